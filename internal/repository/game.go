package repository

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dropfour/connectfour-backend/internal/apperror"
	"github.com/dropfour/connectfour-backend/internal/entity"
)

type GameRepository interface {
	Create(founderID string) *entity.Game
	GetByID(id string) (*entity.Game, error)
	Join(id, playerID string) (*entity.Game, error)
	Leave(id, playerID string) (*entity.Game, bool, error)
	DeleteByID(id string)
	FindByPlayer(playerID string) []*entity.Game
}

// memGames keeps in-progress matches in memory only; a finished match is
// archived separately and a process restart starts from a clean slate.
type memGames struct {
	mu    sync.RWMutex
	games map[string]*entity.Game
}

func NewGameRepository() GameRepository {
	return &memGames{
		games: make(map[string]*entity.Game),
	}
}

func (that *memGames) Create(founderID string) *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	game := entity.NewGame(uuid.NewString(), founderID)
	that.games[game.ID] = game

	return game
}

func (that *memGames) GetByID(id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return game, nil
}

func (that *memGames) Join(id, playerID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	if err := game.AddPlayer(playerID); err != nil {
		return nil, fmt.Errorf("failed to join game %s: %w", id, err)
	}

	return game, nil
}

// Leave removes a participant. When the last one leaves the match is deleted
// and the dissolved flag is true; otherwise the match is retained with its
// board and turn state for the remaining participant.
func (that *memGames) Leave(id, playerID string) (*entity.Game, bool, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[id]
	if !ok {
		return nil, false, apperror.ErrGameNotFound
	}

	if err := game.RemovePlayer(playerID); err != nil {
		return nil, false, fmt.Errorf("failed to leave game %s: %w", id, err)
	}

	if len(game.Players) == 0 {
		delete(that.games, id)
		return nil, true, nil
	}

	return game, false, nil
}

func (that *memGames) DeleteByID(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.games, id)
}

func (that *memGames) FindByPlayer(playerID string) []*entity.Game {
	that.mu.RLock()
	defer that.mu.RUnlock()

	var found []*entity.Game
	for _, game := range that.games {
		if game.HasPlayer(playerID) {
			found = append(found, game)
		}
	}

	return found
}
