package dataset

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestStore_ReloadAndSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	writeCSV(t, path, "title,primary_genre,release_date,popularity\nA,Action,2010-01-01,5\n")

	store := NewStore(path)
	_, err := store.Snapshot()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Nil(t, store.Current())

	var notified atomic.Int32
	store.OnReload(func(ds *Dataset) {
		notified.Add(1)
		assert.Equal(t, 1, ds.Len())
	})

	ds, err := store.Reload()
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
	assert.Same(t, ds, store.Current())
	assert.Equal(t, int32(1), notified.Load())
}

func TestStore_FailedReloadKeepsPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	writeCSV(t, path, "title,primary_genre,release_date,popularity\nA,Action,2010-01-01,5\n")

	store := NewStore(path)
	first, err := store.Reload()
	require.NoError(t, err)

	writeCSV(t, path, "title,genre\nbroken,row\n")
	_, err = store.Reload()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Same(t, first, store.Current())
}

func TestStore_ReloadIfAborts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	writeCSV(t, path, "title,primary_genre,release_date,popularity\nA,Action,2010-01-01,5\n")

	store := NewStore(path)
	_, err := store.ReloadIf(func() bool { return false })
	assert.ErrorIs(t, err, ErrReloadAborted)
	assert.Nil(t, store.Current())
}

func TestNewStoreWith(t *testing.T) {
	ds := New("fixture.csv", []MovieRecord{{Title: "A", PrimaryGenre: "Action"}})
	store := NewStoreWith(ds)

	snap, err := store.Snapshot()
	require.NoError(t, err)
	assert.Same(t, ds, snap)
	assert.Equal(t, "fixture.csv", store.Path())
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	writeCSV(t, path, "title,primary_genre,release_date,popularity\nA,Action,2010-01-01,5\n")

	store := NewStore(path)
	_, err := store.Reload()
	require.NoError(t, err)

	w, err := NewWatcher(store, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	writeCSV(t, path, "title,primary_genre,release_date,popularity\nA,Action,2010-01-01,5\nB,Drama,2011-01-01,7\n")

	select {
	case <-w.Reloaded():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload the dataset")
	}
	assert.Equal(t, 2, store.Current().Len())

	cancel()
	<-done
}

func TestWatcher_CustomReloadFuncIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.csv")
	writeCSV(t, path, "title,primary_genre,release_date,popularity\nA,Action,2010-01-01,5\n")

	var calls atomic.Int32
	w, err := NewWatcher(NewStore(path), 10*time.Millisecond, WithReloadFunc(func() error {
		calls.Add(1)
		return nil
	}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	writeCSV(t, filepath.Join(dir, "notes.txt"), "unrelated")
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())

	writeCSV(t, path, "title,primary_genre,release_date,popularity\nB,Drama,2011-01-01,7\n")
	select {
	case <-w.Reloaded():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not call the reload func")
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
}
