package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

func TestHistoryStore_ListNewestFirst(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	for i, action := range []domain.HistoryAction{domain.ActionCreate, domain.ActionCommit, domain.ActionDaily} {
		require.NoError(t, store.Record(ctx, domain.HistoryEntry{
			ID:        string(rune('a' + i)),
			Action:    action,
			CreatedAt: time.Now(),
		}))
	}

	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.ActionDaily, entries[0].Action)
	assert.Equal(t, domain.ActionCreate, entries[2].Action)
}

func TestHistoryStore_Limit(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(ctx, domain.HistoryEntry{ID: string(rune('a' + i))}))
	}

	entries, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestHistoryStore_Close(t *testing.T) {
	store := NewHistoryStore()
	assert.NoError(t, store.Close())
}
