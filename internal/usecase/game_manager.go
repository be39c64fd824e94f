package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropfour/connectfour-backend/internal/apperror"
	"github.com/dropfour/connectfour-backend/internal/connectfour"
	"github.com/dropfour/connectfour-backend/internal/entity"
	"github.com/dropfour/connectfour-backend/internal/protocol"
	"github.com/dropfour/connectfour-backend/internal/registry"
	"github.com/dropfour/connectfour-backend/internal/repository"
)

const (
	reasonFourInARow = "four_in_a_row"
	reasonDraw       = "draw"

	archiveTimeout = 5 * time.Second
)

type gameRepo interface {
	Create(founderID string) *entity.Game
	GetByID(id string) (*entity.Game, error)
	Join(id, playerID string) (*entity.Game, error)
	Leave(id, playerID string) (*entity.Game, bool, error)
	DeleteByID(id string)
	FindByPlayer(playerID string) []*entity.Game
}

type archiveRepo interface {
	Save(ctx context.Context, record *repository.ArchivedGame) error
}

type connRegistry interface {
	Register(playerID string, channel registry.Channel) error
	Resolve(playerID string) (registry.Channel, bool)
	Unregister(playerID string)
	FindByChannel(channel registry.Channel) (string, bool)
}

// GameManager coordinates every inbound event: it binds connections to
// identities, drives match state through the game repo and board engine,
// and fans out notifications through the connection registry.
//
// All event handling is serialized behind one mutex, so two moves for the
// same match are applied in arrival order and the second one observes the
// turn change made by the first. Nothing else mutates the repos.
type GameManager struct {
	logger  *slog.Logger
	games   gameRepo
	archive archiveRepo
	conns   connRegistry

	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, games gameRepo, archive archiveRepo, conns connRegistry) *GameManager {
	return &GameManager{
		logger:  logger,
		games:   games,
		archive: archive,
		conns:   conns,
	}
}

// Connect assigns a fresh identity to a new connection, registers its
// outbound channel and tells the participant its ID.
func (that *GameManager) Connect(channel registry.Channel) (*entity.Player, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player := &entity.Player{ID: uuid.NewString()}

	if err := that.conns.Register(player.ID, channel); err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}

	that.send(player.ID, protocol.NewEnvelope(protocol.TypeUserID, protocol.UserIDPayload{ID: player.ID}))

	return player, nil
}

func (that *GameManager) CreateGame(playerID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "CreateGame", "playerID", playerID)

	game := that.games.Create(playerID)

	that.send(playerID, protocol.NewEnvelope(protocol.TypeSuccess, protocol.SuccessPayload{
		Message: "Game created",
		Game:    game,
	}))

	log.Info("game created", "gameID", game.ID)
}

// JoinGame appends the player to the match and lets every participant know
// the new roster and whether the turn is theirs.
func (that *GameManager) JoinGame(playerID, gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "JoinGame", "playerID", playerID, "gameID", gameID)

	game, err := that.games.Join(gameID, playerID)

	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		that.sendError(playerID, "Game not found")
		return
	case errors.Is(err, apperror.ErrGameFull), errors.Is(err, apperror.ErrAlreadyJoined):
		that.sendError(playerID, "Game is full or you are already in the game")
		return
	case err != nil:
		log.Error("failed to join game", "error", err)
		that.sendError(playerID, "failed to join the game")
		return
	}

	that.broadcast(game, protocol.NewEnvelope(protocol.TypeSuccess, protocol.SuccessPayload{
		Message: "Game joined",
		Game:    game,
	}))

	for _, id := range game.Players {
		that.send(id, protocol.NewEnvelope(protocol.TypeCurrentPlayer, protocol.CurrentPlayerPayload{
			IsYourTurn: game.CurrentTurn == id,
		}))
	}

	log.Info("player joined game")
}

// MakeMove validates and applies one drop. Board updates are always sent
// before the matching turn or game-over notification.
func (that *GameManager) MakeMove(playerID, gameID string, column int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "MakeMove", "playerID", playerID, "gameID", gameID)

	game, err := that.games.GetByID(gameID)
	if err != nil {
		that.sendError(playerID, "Game not found")
		return
	}

	if err = game.EnsureTurn(playerID); err != nil {
		that.sendError(playerID, "It's not your turn")
		return
	}

	row, err := connectfour.DropRow(game.Board, column)
	if err != nil {
		that.sendError(playerID, "Column is full")
		return
	}

	game.Board[row][column] = playerID

	if winnerID := connectfour.Winner(game.Board); winnerID != connectfour.EmptyCell {
		that.finishGame(game, winnerID, reasonFourInARow)
		log.Info("game won", "winnerID", winnerID)
		return
	}

	if connectfour.IsFull(game.Board) {
		that.finishGame(game, connectfour.EmptyCell, reasonDraw)
		log.Info("game drawn")
		return
	}

	game.AdvanceTurn()

	that.broadcast(game, protocol.NewEnvelope(protocol.TypeGameUpdate, protocol.GameUpdatePayload{Game: game}))

	that.send(game.CurrentTurn, protocol.NewEnvelope(protocol.TypeCurrentPlayer, protocol.CurrentPlayerPayload{
		IsYourTurn: true,
	}))
}

// Disconnect recovers the identity behind a closed channel and removes it
// from the registry and from every match it belongs to. A match keeps going
// with one participant; a match losing its last participant is dissolved.
func (that *GameManager) Disconnect(channel registry.Channel) {
	that.mu.Lock()
	defer that.mu.Unlock()

	playerID, ok := that.conns.FindByChannel(channel)
	if !ok {
		// the connection closed before any registration completed
		return
	}

	log := that.logger.With("method", "Disconnect", "playerID", playerID)

	that.conns.Unregister(playerID)

	for _, game := range that.games.FindByPlayer(playerID) {
		remaining, dissolved, err := that.games.Leave(game.ID, playerID)
		if err != nil {
			log.Error("failed to leave game", "gameID", game.ID, "error", err)
			continue
		}

		if dissolved {
			log.Info("game dissolved", "gameID", game.ID)
			continue
		}

		that.broadcast(remaining, protocol.NewEnvelope(protocol.TypePlayerDisconnected, protocol.PlayerDisconnectedPayload{
			Message: fmt.Sprintf("Player %s disconnected", playerID),
		}))
	}

	log.Info("player disconnected")
}

// finishGame broadcasts the final board and the game-over notification,
// archives the result and retires the match. Later references to its ID
// resolve to GameNotFound.
func (that *GameManager) finishGame(game *entity.Game, winnerID, reason string) {
	that.broadcast(game, protocol.NewEnvelope(protocol.TypeGameUpdate, protocol.GameUpdatePayload{Game: game}))

	that.broadcast(game, protocol.NewEnvelope(protocol.TypeSuccess, protocol.SuccessPayload{
		Message: "Game over",
		Winner:  winnerID,
	}))

	that.archiveGame(game, winnerID, reason)

	that.games.DeleteByID(game.ID)
}

// archiveGame records the terminal result. Archiving is best effort: a
// storage failure is logged and the coordinator keeps serving.
func (that *GameManager) archiveGame(game *entity.Game, winnerID, reason string) {
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()

	record := &repository.ArchivedGame{
		ID:         game.ID,
		Players:    game.Players,
		Winner:     winnerID,
		Reason:     reason,
		Board:      game.Board,
		FinishedAt: time.Now(),
	}

	if err := that.archive.Save(ctx, record); err != nil {
		that.logger.Error("failed to archive finished game", "gameID", game.ID, "error", err)
	}
}

func (that *GameManager) broadcast(game *entity.Game, envelope protocol.Envelope) {
	for _, playerID := range game.Players {
		that.send(playerID, envelope)
	}
}

// send delivers one envelope to one participant. A missing channel means
// disconnect cleanup raced an in-flight broadcast; the send is dropped so
// every other match keeps working.
func (that *GameManager) send(playerID string, envelope protocol.Envelope) {
	log := that.logger.With("method", "send", "playerID", playerID)

	channel, ok := that.conns.Resolve(playerID)
	if !ok {
		log.Warn("connection not found for player")
		return
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		log.Error("failed to marshal message", "error", err)
		return
	}

	if err = channel.Send(data); err != nil {
		log.Error("failed to send message", "error", err)
	}
}

func (that *GameManager) sendError(playerID, message string) {
	that.send(playerID, protocol.NewEnvelope(protocol.TypeError, protocol.ErrorPayload{Message: message}))
}
