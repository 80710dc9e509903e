// internal/store/memory.go
//
// In-memory implementations of WordStore and GameStore.
//
// Characteristics:
//   - Maps keyed by short code / game ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pickword/server/internal/game"
	"github.com/pickword/server/internal/shortcode"
)

type wordKey struct {
	word      string
	realWords bool
}

// memoryWords is a map-based WordStore.
type memoryWords struct {
	mu       sync.RWMutex
	byShort  map[string]Entry
	byWord   map[wordKey]string
	newShort func() (string, error)
}

// NewMemoryWords constructs an in-memory WordStore.
func NewMemoryWords() WordStore {
	return &memoryWords{
		byShort:  make(map[string]Entry),
		byWord:   make(map[wordKey]string),
		newShort: shortcode.New,
	}
}

func (m *memoryWords) Create(ctx context.Context, word string, realWords bool) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := wordKey{word, realWords}
	if short, ok := m.byWord[key]; ok {
		return m.byShort[short], nil
	}
	for i := 0; i < maxShortAttempts; i++ {
		short, err := m.newShort()
		if err != nil {
			return Entry{}, err
		}
		if _, taken := m.byShort[short]; taken {
			continue
		}
		e := Entry{
			ID:        uuid.NewString(),
			Short:     short,
			Word:      word,
			RealWords: realWords,
			CreatedAt: time.Now().UTC(),
		}
		m.byShort[short] = e
		m.byWord[key] = short
		return e, nil
	}
	return Entry{}, ErrShortExhausted
}

func (m *memoryWords) Lookup(ctx context.Context, short string) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.byShort[short]; ok {
		return e, nil
	}
	return Entry{}, ErrNotFound
}

// memoryGames is a map-based GameStore.
type memoryGames struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryGames constructs an in-memory GameStore.
func NewMemoryGames() GameStore {
	return &memoryGames{games: make(map[string]*game.Game)}
}

func (m *memoryGames) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *memoryGames) View(ctx context.Context, id string, fn func(*game.Game) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	return fn(g)
}

func (m *memoryGames) Update(ctx context.Context, id string, fn func(*game.Game) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	return fn(g)
}

func (m *memoryGames) Prune(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, g := range m.games {
		if g.StartedAt.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}
