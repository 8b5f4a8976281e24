package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := NewHistoryStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestHistoryStore_RecordAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	older := domain.HistoryEntry{
		ID:        "e1",
		Action:    domain.ActionCreate,
		PageID:    "42",
		Title:     "Runbook",
		URL:       "https://wiki.test/pages/42",
		CreatedAt: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
	}
	newer := domain.HistoryEntry{
		ID:           "e2",
		Action:       domain.ActionCommit,
		PageID:       "42",
		Title:        "Runbook",
		URL:          "https://wiki.test/pages/42",
		Instructions: 3,
		CreatedAt:    time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Record(ctx, older))
	require.NoError(t, store.Record(ctx, newer))

	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "e2", entries[0].ID)
	assert.Equal(t, domain.ActionCommit, entries[0].Action)
	assert.Equal(t, 3, entries[0].Instructions)
	assert.True(t, entries[0].CreatedAt.Equal(newer.CreatedAt))
	assert.Equal(t, "e1", entries[1].ID)
}

func TestHistoryStore_Limit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, domain.HistoryEntry{
			ID:        string(rune('a' + i)),
			Action:    domain.ActionDaily,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "e", entries[0].ID)
}

func TestHistoryStore_EmptyList(t *testing.T) {
	store := newTestStore(t)
	entries, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryStore_ReopenPersists(t *testing.T) {
	dir := t.TempDir()
	store, err := NewHistoryStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Record(context.Background(), domain.HistoryEntry{
		ID: "e1", Action: domain.ActionCreate, CreatedAt: time.Now(),
	}))
	require.NoError(t, store.Close())

	reopened, err := NewHistoryStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
