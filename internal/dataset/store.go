package dataset

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/jmagar/movieboard/internal/logging"
)

var (
	// ErrNotLoaded is returned when no snapshot has been loaded yet.
	ErrNotLoaded = errors.New("dataset not loaded")

	// ErrReloadAborted is returned by ReloadIf when commit declined the swap.
	ErrReloadAborted = errors.New("dataset reload aborted")
)

// ReloadListener is called after a new snapshot has been swapped in.
type ReloadListener func(ds *Dataset)

// Store holds the current snapshot. Readers never block; a reload replaces
// the snapshot atomically and only when parsing succeeded.
type Store struct {
	path    string
	current atomic.Pointer[Dataset]

	reloadMu  sync.Mutex
	mu        sync.RWMutex
	listeners []ReloadListener
}

// NewStore creates an empty store reading from path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewStoreWith creates a store already holding ds. Used by tests and the CLI.
func NewStoreWith(ds *Dataset) *Store {
	s := &Store{}
	if ds != nil {
		s.path = ds.Source()
		s.current.Store(ds)
	}
	return s
}

// Path returns the configured source file.
func (s *Store) Path() string {
	return s.path
}

// Current returns the active snapshot, or nil before the first load.
func (s *Store) Current() *Dataset {
	return s.current.Load()
}

// Snapshot returns the active snapshot or ErrNotLoaded.
func (s *Store) Snapshot() (*Dataset, error) {
	ds := s.current.Load()
	if ds == nil {
		return nil, ErrNotLoaded
	}
	return ds, nil
}

// OnReload registers a listener invoked after every successful swap.
func (s *Store) OnReload(fn ReloadListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Reload parses the source file and swaps the snapshot in. On error the
// previous snapshot stays active.
func (s *Store) Reload() (*Dataset, error) {
	return s.ReloadIf(func() bool { return true })
}

// ReloadIf parses the file, then swaps only if commit still returns true.
// Jobs use it to honor a cancellation that arrives while parsing.
func (s *Store) ReloadIf(commit func() bool) (*Dataset, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	ds, err := Load(s.path)
	if err != nil {
		logging.Error().Err(err).Str("path", s.path).Msg("dataset reload failed")
		return nil, err
	}
	if !commit() {
		return nil, ErrReloadAborted
	}

	s.Replace(ds)
	report := ds.Report()
	logging.Info().
		Str("path", s.path).
		Int("rows_kept", report.RowsKept).
		Int("rows_skipped", report.RowsSkipped).
		Int("unknown_dates", report.UnknownDates).
		Dur("duration", report.Duration).
		Msg("dataset loaded")
	return ds, nil
}

// Replace swaps ds in and notifies listeners.
func (s *Store) Replace(ds *Dataset) {
	s.current.Store(ds)

	s.mu.RLock()
	listeners := make([]ReloadListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(ds)
	}
}
