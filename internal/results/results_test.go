package results

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickword/server/internal/store"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := store.OpenDB(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db))
	return NewStore(db)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, r := range []Result{
		{GameID: "g1", Short: "abc123", Won: true, Guesses: 3, ElapsedMs: 5000},
		{GameID: "g2", Short: "abc123", Won: true, Guesses: 3, HardMode: true, ElapsedMs: 4000},
		{GameID: "g3", Short: "abc123", Won: false, Guesses: 6, ElapsedMs: 1000},
		{GameID: "g4", Short: "abc123", Won: true, Guesses: 5, ElapsedMs: 9000},
		{GameID: "g5", Short: "zzz999", Won: true, Guesses: 1, ElapsedMs: 10},
	} {
		require.NoError(t, s.Record(ctx, r))
	}
	// duplicate is ignored
	require.NoError(t, s.Record(ctx, Result{GameID: "g1", Short: "abc123", Won: true, Guesses: 3}))

	sum, err := s.Summary(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Played)
	assert.Equal(t, 3, sum.Wins)
	assert.Equal(t, 1, sum.HardModeWins)
	assert.Equal(t, map[int]int{3: 2, 5: 1}, sum.Distribution)
	assert.Equal(t, int64(4000), sum.BestMs)

	empty, err := s.Summary(ctx, "none00")
	require.NoError(t, err)
	assert.Zero(t, empty.Played)
	assert.Empty(t, empty.Distribution)
}
