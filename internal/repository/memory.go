package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type memoryRecord struct {
	payload   []byte
	expiresAt time.Time
}

type memoryGame struct {
	mu    sync.Mutex
	games map[string]memoryRecord
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryGameRepository keeps games in process memory with the same
// expiry rules as the redis repository. Games are stored as JSON so callers
// never share state with the store.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		games: make(map[string]memoryRecord),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	record := memoryRecord{payload: gameJSON}
	if that.ttl > 0 {
		record.expiresAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	that.games[game.ID] = record
	that.mu.Unlock()

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	record, ok := that.lookup(id)
	if !ok {
		return &entity.Game{}, ErrGameNotFound
	}

	var existingGame entity.Game
	if err := json.Unmarshal(record.payload, &existingGame); err != nil {
		return &entity.Game{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	if _, ok := that.lookup(id); !ok {
		return ErrGameNotFound
	}

	that.mu.Lock()
	delete(that.games, id)
	that.mu.Unlock()

	return nil
}

// lookup returns a live record and drops it when it has expired.
func (that *memoryGame) lookup(id string) (memoryRecord, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	record, ok := that.games[id]
	if !ok {
		return memoryRecord{}, false
	}

	if !record.expiresAt.IsZero() && !that.now().Before(record.expiresAt) {
		delete(that.games, id)
		return memoryRecord{}, false
	}

	return record, true
}
