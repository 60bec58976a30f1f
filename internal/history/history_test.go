package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonicapp/tonic/internal/scan"
)

func result(id string, score int, at time.Time) *scan.Result {
	return &scan.Result{
		ID:          id,
		Timestamp:   at,
		HealthScore: score,
	}
}

func TestSaveAndLoad(t *testing.T) {
	store, err := NewStore(t.TempDir(), 10)
	require.NoError(t, err)

	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(result("abc-123", 84, at)))

	got, err := store.Load("abc-123")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", got.ID)
	assert.Equal(t, 84, got.HealthScore)
	assert.True(t, got.Timestamp.Equal(at))
}

func TestLoadUnknownID(t *testing.T) {
	store, err := NewStore(t.TempDir(), 10)
	require.NoError(t, err)

	_, err = store.Load("missing")
	assert.Error(t, err)
}

func TestLatest(t *testing.T) {
	store, err := NewStore(t.TempDir(), 10)
	require.NoError(t, err)

	got, err := store.Latest()
	require.NoError(t, err)
	assert.Nil(t, got, "empty store has no latest")

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(result("first", 70, base)))
	require.NoError(t, store.Save(result("second", 80, base.Add(time.Hour))))
	require.NoError(t, store.Save(result("third", 90, base.Add(2*time.Hour))))

	got, err = store.Latest()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "third", got.ID)
}

func TestListOldestFirst(t *testing.T) {
	store, err := NewStore(t.TempDir(), 10)
	require.NoError(t, err)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	// Saved out of order; listing follows the timestamp, not insertion.
	require.NoError(t, store.Save(result("b", 80, base.Add(time.Hour))))
	require.NoError(t, store.Save(result("a", 70, base)))
	require.NoError(t, store.Save(result("c", 90, base.Add(2*time.Hour))))

	results, err := store.List()
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "b", results[1].ID)
	assert.Equal(t, "c", results[2].ID)
}

func TestSavePrunesOldEntries(t *testing.T) {
	store, err := NewStore(t.TempDir(), 3)
	require.NoError(t, err)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("scan-%d", i)
		require.NoError(t, store.Save(result(id, 50+i, base.Add(time.Duration(i)*time.Hour))))
	}

	results, err := store.List()
	require.NoError(t, err)
	require.Len(t, results, 3, "retention keeps only the newest entries")
	assert.Equal(t, "scan-2", results[0].ID)
	assert.Equal(t, "scan-4", results[2].ID)
}

func TestZeroKeepRetainsEverything(t *testing.T) {
	store, err := NewStore(t.TempDir(), 0)
	require.NoError(t, err)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("scan-%d", i)
		require.NoError(t, store.Save(result(id, 50, base.Add(time.Duration(i)*time.Minute))))
	}

	results, err := store.List()
	require.NoError(t, err)
	assert.Len(t, results, 10)
}

func TestListSkipsCorruptEntries(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir, 10)
	require.NoError(t, err)

	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(result("good", 85, at)))
	bad := filepath.Join(dir, "19990101T000000-bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))

	results, err := store.List()
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].ID)
}
