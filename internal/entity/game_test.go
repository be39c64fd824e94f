package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropfour/connectfour-backend/internal/apperror"
)

func TestNewGame(t *testing.T) {
	// Given/When: a new game founded by p1
	game := NewGame("g1", "p1")

	// Then: the founder is the only participant and holds the turn
	assert.Equal(t, "g1", game.ID)
	assert.Equal(t, []string{"p1"}, game.Players)
	assert.Equal(t, "p1", game.CurrentTurn)
}

func TestGame_AddPlayer(t *testing.T) {
	t.Run("Appends a second player in join order", func(t *testing.T) {
		// Given: a game with only the founder
		game := NewGame("g1", "p1")

		// When: a second player joins
		err := game.AddPlayer("p2")

		// Then: the roster grows and the turn stays with the founder
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2"}, game.Players)
		assert.Equal(t, "p1", game.CurrentTurn)
	})

	t.Run("Rejects a player who already joined", func(t *testing.T) {
		// Given: a game with only the founder
		game := NewGame("g1", "p1")

		// When: the founder tries to join their own game
		err := game.AddPlayer("p1")

		// Then: ErrAlreadyJoined is returned and the roster is unchanged
		require.ErrorIs(t, err, apperror.ErrAlreadyJoined)
		assert.Equal(t, []string{"p1"}, game.Players)
	})

	t.Run("Rejects a third player", func(t *testing.T) {
		// Given: a full game
		game := NewGame("g1", "p1")
		require.NoError(t, game.AddPlayer("p2"))

		// When: a third player tries to join
		err := game.AddPlayer("p3")

		// Then: ErrGameFull is returned
		require.ErrorIs(t, err, apperror.ErrGameFull)
		assert.Equal(t, []string{"p1", "p2"}, game.Players)
	})
}

func TestGame_RemovePlayer(t *testing.T) {
	t.Run("Removes a participant and keeps the rest", func(t *testing.T) {
		// Given: a full game where p1 holds the turn
		game := NewGame("g1", "p1")
		require.NoError(t, game.AddPlayer("p2"))

		// When: p2 leaves
		err := game.RemovePlayer("p2")

		// Then: p1 remains and still holds the turn
		require.NoError(t, err)
		assert.Equal(t, []string{"p1"}, game.Players)
		assert.Equal(t, "p1", game.CurrentTurn)
	})

	t.Run("Passes the turn when the current player leaves", func(t *testing.T) {
		// Given: a full game where p2 holds the turn
		game := NewGame("g1", "p1")
		require.NoError(t, game.AddPlayer("p2"))
		game.CurrentTurn = "p2"

		// When: p2 leaves
		err := game.RemovePlayer("p2")

		// Then: the remaining player can keep moving
		require.NoError(t, err)
		assert.Equal(t, "p1", game.CurrentTurn)
	})

	t.Run("Passes the turn when the founder leaves mid-turn", func(t *testing.T) {
		// Given: a full game where the founder holds the turn
		game := NewGame("g1", "p1")
		require.NoError(t, game.AddPlayer("p2"))

		// When: the founder leaves
		err := game.RemovePlayer("p1")

		// Then: p2 inherits the turn
		require.NoError(t, err)
		assert.Equal(t, []string{"p2"}, game.Players)
		assert.Equal(t, "p2", game.CurrentTurn)
	})

	t.Run("Returns ErrNotAMember for a stranger", func(t *testing.T) {
		// Given: a game without p9
		game := NewGame("g1", "p1")

		// When: removing a player who never joined
		err := game.RemovePlayer("p9")

		// Then: ErrNotAMember is returned
		require.ErrorIs(t, err, apperror.ErrNotAMember)
	})
}

func TestGame_AdvanceTurn(t *testing.T) {
	t.Run("Alternates between two participants", func(t *testing.T) {
		// Given: a full game with the founder to move
		game := NewGame("g1", "p1")
		require.NoError(t, game.AddPlayer("p2"))

		// When/Then: the turn alternates and wraps around
		game.AdvanceTurn()
		assert.Equal(t, "p2", game.CurrentTurn)

		game.AdvanceTurn()
		assert.Equal(t, "p1", game.CurrentTurn)
	})

	t.Run("Keeps the turn with a sole participant", func(t *testing.T) {
		// Given: a game with only the founder
		game := NewGame("g1", "p1")

		// When: advancing the turn
		game.AdvanceTurn()

		// Then: the founder still moves
		assert.Equal(t, "p1", game.CurrentTurn)
	})
}

func TestGame_EnsureTurn(t *testing.T) {
	// Given: a full game with the founder to move
	game := NewGame("g1", "p1")
	require.NoError(t, game.AddPlayer("p2"))

	// When/Then: only the current player may move
	require.NoError(t, game.EnsureTurn("p1"))
	require.ErrorIs(t, game.EnsureTurn("p2"), apperror.ErrNotYourTurn)
}

func TestGame_HasPlayer(t *testing.T) {
	game := NewGame("g1", "p1")

	assert.True(t, game.HasPlayer("p1"))
	assert.False(t, game.HasPlayer("p2"))
}
