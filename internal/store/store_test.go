package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickword/server/internal/game"
)

func openTestDB(t *testing.T) *sqliteWords {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	return NewSQLiteWords(db).(*sqliteWords)
}

// wordStoreContract runs the behaviour every WordStore must have.
func wordStoreContract(t *testing.T, s WordStore) {
	ctx := context.Background()

	e, err := s.Create(ctx, "crane", false)
	require.NoError(t, err)
	assert.Len(t, e.Short, 6)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "crane", e.Word)
	assert.False(t, e.RealWords)

	again, err := s.Create(ctx, "crane", false)
	require.NoError(t, err)
	assert.Equal(t, e.Short, again.Short, "same word pair reuses the short code")

	withDict, err := s.Create(ctx, "crane", true)
	require.NoError(t, err)
	assert.NotEqual(t, e.Short, withDict.Short)
	assert.True(t, withDict.RealWords)

	got, err := s.Lookup(ctx, e.Short)
	require.NoError(t, err)
	assert.Equal(t, e.Word, got.Word)
	assert.Equal(t, e.ID, got.ID)

	_, err = s.Lookup(ctx, "nope00")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryWords(t *testing.T) {
	wordStoreContract(t, NewMemoryWords())
}

func TestSQLiteWords(t *testing.T) {
	wordStoreContract(t, openTestDB(t))
}

func TestMigrate_Idempotent(t *testing.T) {
	s := openTestDB(t)
	require.NoError(t, Migrate(s.db))

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)
}

// sequence returns canned short codes, then fails.
func sequence(codes ...string) func() (string, error) {
	var mu sync.Mutex
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(codes) == 0 {
			return "", errors.New("out of codes")
		}
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}
}

func TestCreate_RetriesShortCollision(t *testing.T) {
	ctx := context.Background()

	mem := NewMemoryWords().(*memoryWords)
	sq := openTestDB(t)
	for name, tc := range map[string]struct {
		s   WordStore
		set func(func() (string, error))
	}{
		"memory": {mem, func(f func() (string, error)) { mem.newShort = f }},
		"sqlite": {sq, func(f func() (string, error)) { sq.newShort = f }},
	} {
		t.Run(name, func(t *testing.T) {
			tc.set(sequence("aaaaaa", "aaaaaa", "bbbbbb"))
			first, err := tc.s.Create(ctx, "slate", false)
			require.NoError(t, err)
			assert.Equal(t, "aaaaaa", first.Short)

			second, err := tc.s.Create(ctx, "trace", false)
			require.NoError(t, err)
			assert.Equal(t, "bbbbbb", second.Short)
		})
	}
}

func TestCreate_Exhausted(t *testing.T) {
	mem := NewMemoryWords().(*memoryWords)
	mem.newShort = func() (string, error) { return "same00", nil }
	_, err := mem.Create(context.Background(), "crane", false)
	require.NoError(t, err)
	_, err = mem.Create(context.Background(), "slate", false)
	assert.ErrorIs(t, err, ErrShortExhausted)
}

func TestMemoryGames(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryGames()

	g, err := game.New(game.Options{Secret: "crane"})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, g))

	err = s.Update(ctx, g.ID, func(g *game.Game) error {
		_, err := g.ApplyGuess("slate", nil)
		return err
	})
	require.NoError(t, err)

	require.NoError(t, s.View(ctx, g.ID, func(g *game.Game) error {
		assert.Len(t, g.History, 1)
		return nil
	}))

	boom := errors.New("boom")
	assert.ErrorIs(t, s.Update(ctx, g.ID, func(*game.Game) error { return boom }), boom)
	assert.ErrorIs(t, s.View(ctx, "missing", func(*game.Game) error { return nil }), ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, "missing", func(*game.Game) error { return nil }), ErrNotFound)

	assert.Equal(t, 0, s.Prune(ctx, g.StartedAt.Add(-time.Minute)))
	assert.Equal(t, 1, s.Prune(ctx, g.StartedAt.Add(time.Minute)))
	assert.ErrorIs(t, s.View(ctx, g.ID, func(*game.Game) error { return nil }), ErrNotFound)
}
