package entity

import (
	"github.com/dropfour/connectfour-backend/internal/apperror"
	"github.com/dropfour/connectfour-backend/internal/connectfour"
)

// MaxPlayers - a match never holds more than two participants.
const MaxPlayers = 2

// Game aggregates the participants of one match (in join order), the board
// and whose turn it is. The founder holds the turn until the first move.
type Game struct {
	ID          string            `json:"id"`
	Players     []string          `json:"players"`
	Board       connectfour.Board `json:"board"`
	CurrentTurn string            `json:"currentPlayer"`
}

func NewGame(id, founderID string) *Game {
	return &Game{
		ID:          id,
		Players:     []string{founderID},
		CurrentTurn: founderID,
	}
}

// AddPlayer appends a participant in join order. The current turn is left
// untouched — it stays with the founder until a move is made.
func (that *Game) AddPlayer(playerID string) error {
	if that.HasPlayer(playerID) {
		return apperror.ErrAlreadyJoined
	}

	if len(that.Players) >= MaxPlayers {
		return apperror.ErrGameFull
	}

	that.Players = append(that.Players, playerID)

	return nil
}

// RemovePlayer drops a participant from the match. If the departing player
// held the turn, it passes to the next remaining participant so the match
// stays playable for whoever is left.
func (that *Game) RemovePlayer(playerID string) error {
	for i, id := range that.Players {
		if id != playerID {
			continue
		}

		that.Players = append(that.Players[:i], that.Players[i+1:]...)

		if that.CurrentTurn == playerID && len(that.Players) > 0 {
			that.CurrentTurn = that.Players[i%len(that.Players)]
		}

		return nil
	}

	return apperror.ErrNotAMember
}

// EnsureTurn reports whether the player may move right now.
func (that *Game) EnsureTurn(playerID string) error {
	if that.CurrentTurn != playerID {
		return apperror.ErrNotYourTurn
	}

	return nil
}

func (that *Game) HasPlayer(playerID string) bool {
	for _, id := range that.Players {
		if id == playerID {
			return true
		}
	}

	return false
}

// AdvanceTurn moves the turn to the next participant in join order, wrapping
// over the current participant count. With a single participant the turn
// stays put.
func (that *Game) AdvanceTurn() {
	for i, id := range that.Players {
		if id == that.CurrentTurn {
			that.CurrentTurn = that.Players[(i+1)%len(that.Players)]
			return
		}
	}
}
