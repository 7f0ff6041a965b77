package schema

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sdsheeks/gqlscout/internal/errors"
)

// fakeFetcher returns queued contents, or an error when the queue is empty
// and Err is set.
type fakeFetcher struct {
	contents []string
	err      error
	calls    int
}

func (f *fakeFetcher) Fetch(_ context.Context) (string, error) {
	f.calls++
	if len(f.contents) > 0 {
		next := f.contents[0]
		f.contents = f.contents[1:]
		return next, nil
	}
	if f.err != nil {
		return "", f.err
	}
	return "", fmt.Errorf("fetcher exhausted")
}

func newTestManager(t *testing.T, fetcher Fetcher, maxAge time.Duration) (*Manager, *Store) {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "schema.graphql"))
	return NewManager(store, fetcher, maxAge), store
}

func TestManager_NoCopyFetchesAndStores(t *testing.T) {
	fetcher := &fakeFetcher{contents: []string{"scalar A\n"}}
	m, store := newTestManager(t, fetcher, time.Hour)

	content, err := m.GetContent(context.Background())
	if err != nil {
		t.Fatalf("GetContent() error = %v", err)
	}
	if content != "scalar A\n" {
		t.Errorf("GetContent() = %q", content)
	}

	stored, err := store.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if stored != "scalar A\n" {
		t.Errorf("stored = %q, want fetched content", stored)
	}
}

func TestManager_FreshCopySkipsNetwork(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("network down")}
	m, store := newTestManager(t, fetcher, time.Hour)

	if err := store.Write("scalar Cached\n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	content, err := m.GetContent(context.Background())
	if err != nil {
		t.Fatalf("GetContent() error = %v", err)
	}
	if content != "scalar Cached\n" {
		t.Errorf("GetContent() = %q, want cached content", content)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times, want 0", fetcher.calls)
	}
}

func TestManager_NoCopyFailedFetch(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("connection refused")}
	m, store := newTestManager(t, fetcher, time.Hour)

	_, err := m.GetContent(context.Background())
	if !errors.Is(err, errors.ErrSchemaUnavailable) {
		t.Fatalf("GetContent() error = %v, want SCHEMA_UNAVAILABLE", err)
	}
	if store.Exists() {
		t.Error("no file should be created on a failed fetch")
	}
}

func TestManager_NeedsRefresh(t *testing.T) {
	fetcher := &fakeFetcher{}
	m, store := newTestManager(t, fetcher, time.Hour)

	// No copy at all: refresh always needed
	if !m.NeedsRefresh() {
		t.Error("NeedsRefresh() = false with no stored copy")
	}

	if err := store.Write("scalar A\n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if m.NeedsRefresh() {
		t.Error("NeedsRefresh() = true for a fresh copy")
	}

	// Advance the synthetic clock past the freshness window
	m.WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })
	if !m.NeedsRefresh() {
		t.Error("NeedsRefresh() = false for a stale copy")
	}
}

func TestManager_StaleCopyRefreshes(t *testing.T) {
	fetcher := &fakeFetcher{contents: []string{"scalar New\n"}}
	m, store := newTestManager(t, fetcher, time.Hour)

	if err := store.Write("scalar Old\n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	m.WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })

	doc, err := m.GetDocument(context.Background())
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if doc.Content != "scalar New\n" {
		t.Errorf("Content = %q, want refreshed content", doc.Content)
	}
	if doc.Snapshot.Source != SourceRemote {
		t.Errorf("Source = %q, want remote", doc.Snapshot.Source)
	}
	if doc.Snapshot.ID == "" {
		t.Error("refreshed snapshot should carry an ID")
	}
}

func TestManager_StaleCopyServedWhenRefreshFails(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("network down")}
	m, store := newTestManager(t, fetcher, time.Hour)

	if err := store.Write("scalar Stale\n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	m.WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })

	doc, err := m.GetDocument(context.Background())
	if err != nil {
		t.Fatalf("GetDocument() error = %v, want stale copy served", err)
	}
	if doc.Content != "scalar Stale\n" {
		t.Errorf("Content = %q, want stale copy", doc.Content)
	}
	if doc.Snapshot.Source != SourceLocal {
		t.Errorf("Source = %q, want local", doc.Snapshot.Source)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1 attempted refresh", fetcher.calls)
	}
}

func TestManager_ForceRefreshUnconditional(t *testing.T) {
	fetcher := &fakeFetcher{contents: []string{"scalar First\n", "scalar Second\n"}}
	m, store := newTestManager(t, fetcher, time.Hour)

	if _, err := m.ForceRefresh(context.Background()); err != nil {
		t.Fatalf("ForceRefresh() error = %v", err)
	}

	// Immediately after a fresh write, force refresh still fetches again
	doc, err := m.ForceRefresh(context.Background())
	if err != nil {
		t.Fatalf("ForceRefresh() error = %v", err)
	}
	if doc.Content != "scalar Second\n" {
		t.Errorf("Content = %q, want second fetch", doc.Content)
	}
	if fetcher.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2", fetcher.calls)
	}

	stored, err := store.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if stored != "scalar Second\n" {
		t.Errorf("stored = %q, want overwritten copy", stored)
	}
}

func TestManager_ForceRefreshPropagatesFailure(t *testing.T) {
	fetcher := &fakeFetcher{contents: []string{"scalar Good\n"}, err: fmt.Errorf("boom")}
	m, _ := newTestManager(t, fetcher, time.Hour)

	if _, err := m.ForceRefresh(context.Background()); err != nil {
		t.Fatalf("first ForceRefresh() error = %v", err)
	}

	// Queue exhausted: the second refresh fails and must not fall back
	_, err := m.ForceRefresh(context.Background())
	if !errors.Is(err, errors.ErrSchemaUnavailable) {
		t.Fatalf("ForceRefresh() error = %v, want SCHEMA_UNAVAILABLE", err)
	}
}

func TestManager_EmptyStoredDocumentTreatedAsAbsent(t *testing.T) {
	fetcher := &fakeFetcher{contents: []string{"scalar Fetched\n"}}
	store := NewStore(filepath.Join(t.TempDir(), "schema.graphql"))
	if err := os.WriteFile(store.Path(), nil, 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	m := NewManager(store, fetcher, time.Hour)

	content, err := m.GetContent(context.Background())
	if err != nil {
		t.Fatalf("GetContent() error = %v", err)
	}
	if content != "scalar Fetched\n" {
		t.Errorf("GetContent() = %q, want fetched content", content)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1", fetcher.calls)
	}
}

func TestManager_StorageWriteFailureIsConfigurationError(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// Parent "directory" is a regular file, so the store write must fail
	store := NewStore(filepath.Join(blocker, "schema.graphql"))
	fetcher := &fakeFetcher{contents: []string{"scalar A\n"}}
	m := NewManager(store, fetcher, time.Hour)

	_, err := m.GetContent(context.Background())
	if !errors.Is(err, errors.ErrConfiguration) {
		t.Fatalf("GetContent() error = %v, want CONFIGURATION", err)
	}
}

func TestManager_Status(t *testing.T) {
	fetcher := &fakeFetcher{}
	m, store := newTestManager(t, fetcher, time.Hour)

	st := m.Status()
	if st.Exists || !st.NeedsRefresh {
		t.Errorf("Status() = %+v, want missing+needs-refresh", st)
	}

	if err := store.Write("scalar A\n"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	st = m.Status()
	if !st.Exists || st.NeedsRefresh {
		t.Errorf("Status() = %+v, want fresh copy", st)
	}
	if st.MaxAgeHours != 1 {
		t.Errorf("MaxAgeHours = %v, want 1", st.MaxAgeHours)
	}
}
