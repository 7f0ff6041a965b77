package schema

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/sdsheeks/gqlscout/internal/errors"
)

// Source records where a returned document came from.
type Source string

const (
	// SourceLocal means the stored copy was served without a network call.
	SourceLocal Source = "local"
	// SourceRemote means the document was freshly fetched on this call.
	SourceRemote Source = "remote"
)

// Snapshot is provenance metadata for a returned document.
type Snapshot struct {
	// ID is a ULID minted when the content was fetched by this process.
	// Empty for copies written by an earlier process.
	ID string `json:"id,omitempty"`
	// Source reports local vs. freshly fetched.
	Source Source `json:"source"`
	// ObtainedAt is when the content was last written to storage.
	ObtainedAt time.Time `json:"obtained_at"`
	// Chars is the document length.
	Chars int `json:"chars"`
}

// Document pairs the SDL text with its provenance.
type Document struct {
	Content  string
	Snapshot Snapshot
}

// Status describes the cache state without shipping the document.
type Status struct {
	Path         string  `json:"path"`
	Exists       bool    `json:"exists"`
	AgeHours     float64 `json:"age_hours,omitempty"`
	MaxAgeHours  float64 `json:"max_age_hours"`
	NeedsRefresh bool    `json:"needs_refresh"`
}

// Manager orchestrates "get current schema text": serve the stored copy,
// fetch remotely, or force-refresh. It is an explicit instance with injected
// storage, fetcher, freshness window, and clock, so freshness behavior is
// testable with synthetic clocks and temp paths.
type Manager struct {
	store   *Store
	fetcher Fetcher
	maxAge  time.Duration
	now     func() time.Time

	// mu serializes refreshes: concurrent force-refreshes against the same
	// storage path would otherwise race (last writer wins).
	mu        sync.Mutex
	lastID    string
	lastFetch time.Time
}

// NewManager creates a Manager with the given store, fetcher, and freshness
// window.
func NewManager(store *Store, fetcher Fetcher, maxAge time.Duration) *Manager {
	return &Manager{
		store:   store,
		fetcher: fetcher,
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// WithClock overrides the manager's clock. Tests only.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// NeedsRefresh reports whether the stored copy is absent or older than the
// freshness window. Costs a metadata stat, never touches the network.
func (m *Manager) NeedsRefresh() bool {
	age, err := m.store.Age(m.now())
	if err != nil {
		return true
	}
	return age > m.maxAge
}

// Status returns the cache state for status reporting.
func (m *Manager) Status() *Status {
	st := &Status{
		Path:        m.store.Path(),
		MaxAgeHours: m.maxAge.Hours(),
	}
	age, err := m.store.Age(m.now())
	if err != nil {
		st.NeedsRefresh = true
		return st
	}
	st.Exists = true
	st.AgeHours = age.Hours()
	st.NeedsRefresh = age > m.maxAge
	return st
}

// Peek returns the stored copy regardless of freshness, without any network
// call. Status reporting uses this to summarize what is on disk.
func (m *Manager) Peek() (string, error) {
	return m.store.Read()
}

// GetContent returns the current best-known SDL text.
func (m *Manager) GetContent(ctx context.Context) (string, error) {
	doc, err := m.GetDocument(ctx)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}

// GetDocument returns the current best-known document with provenance.
//
// Fresh local copy: served without any network call, so network failures
// cannot surface from this path. Stale local copy: a refresh is attempted,
// but on failure the stale copy is still served; for interactive callers a
// stale schema beats no schema. No local copy: fetch-and-store, and a fetch
// failure is a SchemaUnavailableError.
func (m *Manager) GetDocument(ctx context.Context) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, readErr := m.store.Read()
	haveCopy := readErr == nil

	if haveCopy && !m.needsRefreshLocked() {
		return m.localDocument(content), nil
	}

	doc, err := m.refreshLocked(ctx)
	if err != nil {
		if haveCopy {
			// Graceful degradation: serve the stale copy.
			return m.localDocument(content), nil
		}
		return nil, err
	}
	return doc, nil
}

// ForceRefresh unconditionally fetches, overwrites the stored copy, and
// returns the new document. Failures propagate: the caller explicitly asked
// to bypass the cache, so a silent fallback to a stale copy would lie.
func (m *Manager) ForceRefresh(ctx context.Context) (*Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshLocked(ctx)
}

// refreshLocked fetches and stores a new copy. Caller holds m.mu.
func (m *Manager) refreshLocked(ctx context.Context) (*Document, error) {
	content, err := m.fetcher.Fetch(ctx)
	if err != nil {
		return nil, errors.NewSchemaUnavailable(err)
	}

	if err := m.store.Write(content); err != nil {
		// Storage trouble is a deployment problem, not a network problem.
		return nil, errors.NewConfiguration("failed to store schema copy", err)
	}

	m.lastID = ulid.Make().String()
	m.lastFetch = m.now()

	return &Document{
		Content: content,
		Snapshot: Snapshot{
			ID:         m.lastID,
			Source:     SourceRemote,
			ObtainedAt: m.lastFetch,
			Chars:      len(content),
		},
	}, nil
}

// localDocument builds the provenance wrapper for a stored copy.
func (m *Manager) localDocument(content string) *Document {
	obtained, err := m.store.ModTime()
	if err != nil {
		obtained = m.now()
	}
	return &Document{
		Content: content,
		Snapshot: Snapshot{
			ID:         m.lastID,
			Source:     SourceLocal,
			ObtainedAt: obtained,
			Chars:      len(content),
		},
	}
}

// needsRefreshLocked is NeedsRefresh without re-acquiring the lock.
func (m *Manager) needsRefreshLocked() bool {
	age, err := m.store.Age(m.now())
	if err != nil {
		return true
	}
	return age > m.maxAge
}
