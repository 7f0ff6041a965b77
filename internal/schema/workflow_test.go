package schema

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sdsheeks/gqlscout/internal/errors"
	"github.com/sdsheeks/gqlscout/internal/search"
	"github.com/sdsheeks/gqlscout/internal/sdl"
)

// TestFullWorkflow exercises the complete schema lifecycle:
// cold start → fetch-and-store → serve local → stale refresh →
// fetch failure with stale fallback → force refresh → search over the result.
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()

	store := NewStore(filepath.Join(t.TempDir(), "schema.graphql"))
	fetcher := &fakeFetcher{contents: []string{
		"type Query {\n  user(id: ID!): User\n}\n\ntype User {\n  id: ID!\n}\n",
		"type Query {\n  user(id: ID!): User\n  users: [User]\n}\n\ntype User {\n  id: ID!\n  email: String\n}\n",
	}}

	now := time.Now()
	m := NewManager(store, fetcher, time.Hour).WithClock(func() time.Time { return now })

	// 1. Cold start: no copy, status says refresh needed
	st := m.Status()
	require.False(t, st.Exists)
	require.True(t, st.NeedsRefresh)

	// 2. First access fetches and stores
	doc, err := m.GetDocument(ctx)
	require.NoError(t, err)
	require.Equal(t, SourceRemote, doc.Snapshot.Source)
	require.NotEmpty(t, doc.Snapshot.ID)
	require.Equal(t, 1, fetcher.calls)

	// 3. Second access within the freshness window serves the local copy
	doc, err = m.GetDocument(ctx)
	require.NoError(t, err)
	require.Equal(t, SourceLocal, doc.Snapshot.Source)
	require.Equal(t, 1, fetcher.calls)

	// 4. Past the window, the next access refreshes opportunistically
	now = now.Add(2 * time.Hour)
	doc, err = m.GetDocument(ctx)
	require.NoError(t, err)
	require.Equal(t, SourceRemote, doc.Snapshot.Source)
	require.Equal(t, 2, fetcher.calls)
	require.Contains(t, doc.Content, "users: [User]")

	// 5. The refreshed document is searchable with structural context
	result := search.Search(doc.Content, search.Query{Pattern: "user", Filter: "query"})
	require.Empty(t, result.Error)
	require.Equal(t, 2, result.TotalMatches)
	require.Equal(t, "Query", result.Matches[0].Enclosing)

	// 6. Stale copy plus a dead endpoint: the stale copy is still served
	now = now.Add(2 * time.Hour)
	fetcher.err = fmt.Errorf("connection refused")
	doc, err = m.GetDocument(ctx)
	require.NoError(t, err)
	require.Equal(t, SourceLocal, doc.Snapshot.Source)
	require.Contains(t, doc.Content, "email: String")

	// 7. Force refresh refuses the silent fallback
	_, err = m.ForceRefresh(ctx)
	require.Error(t, err)
	var sErr *errors.ScoutError
	require.ErrorAs(t, err, &sErr)
	require.Equal(t, errors.ErrSchemaUnavailable, sErr.Code)

	// 8. The failed force refresh left the stored copy intact
	content, err := m.Peek()
	require.NoError(t, err)
	require.Equal(t, 2, sdl.Summarize(content).Types)
}
