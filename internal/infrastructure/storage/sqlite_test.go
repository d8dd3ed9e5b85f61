package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/webgames/internal/application/replay"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should exist")
	assert.NoError(t, store.Close())
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := createTestStore(t)
	data := replay.CreateTestReplayData(10, "KeyD", 2, 6)

	id, err := store.SaveRecording(data)
	require.NoError(t, err)
	assert.Positive(t, id)

	loaded, err := store.LoadRecording(id)
	require.NoError(t, err)
	assert.Equal(t, data.Ticks, loaded.Ticks)
	assert.Equal(t, data.Variant, loaded.Variant)
	assert.Equal(t, data.Frames, loaded.Frames)
}

func TestStore_SaveEmpty(t *testing.T) {
	store := createTestStore(t)

	_, err := store.SaveRecording(replay.ReplayData{Variant: "deck"})
	assert.ErrorIs(t, err, replay.ErrNoFrames)
}

func TestStore_ListRecordings(t *testing.T) {
	store := createTestStore(t)

	deck := replay.CreateTestReplayData(5, "KeyA", 0, 1)
	deck.Variant = "deck"
	factory := replay.CreateTestReplayData(7, "KeyR", 0, 3)
	factory.Variant = "factory"

	_, err := store.SaveRecording(deck)
	require.NoError(t, err)
	_, err = store.SaveRecording(factory)
	require.NoError(t, err)
	_, err = store.SaveRecording(deck)
	require.NoError(t, err)

	all, err := store.ListRecordings("", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(3), all[0].ID, "newest first")

	decks, err := store.ListRecordings("deck", 10)
	require.NoError(t, err)
	require.Len(t, decks, 2)
	assert.Equal(t, uint64(5), decks[0].Ticks)
	assert.Equal(t, 2, decks[0].Events)

	limited, err := store.ListRecordings("", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStore_NotFound(t *testing.T) {
	store := createTestStore(t)

	_, err := store.LoadRecording(42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeleteRecording(42), ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := createTestStore(t)
	id, err := store.SaveRecording(replay.CreateTestReplayData(3, "KeyA", 0, 1))
	require.NoError(t, err)

	require.NoError(t, store.DeleteRecording(id))
	_, err = store.LoadRecording(id)
	assert.ErrorIs(t, err, ErrNotFound)
}
