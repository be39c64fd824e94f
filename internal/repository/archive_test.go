package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropfour/connectfour-backend/internal/connectfour"
	"github.com/dropfour/connectfour-backend/testing/suite"
)

func TestArchiveRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	archiveRepo := NewArchiveRepository(st.Storage)

	// Given: the terminal result of a won match
	var board connectfour.Board
	for col := 0; col < 4; col++ {
		board[5][col] = "p1"
	}

	record := &ArchivedGame{
		ID:         "g123",
		Players:    []string{"p1", "p2"},
		Winner:     "p1",
		Reason:     "four_in_a_row",
		Board:      board,
		FinishedAt: time.Now().UTC(),
	}

	// When: saving and reading it back
	err := archiveRepo.Save(ctx, record)
	require.NoError(t, err)

	stored, err := archiveRepo.GetByID(ctx, "g123")

	// Then: the stored record matches what was written
	require.NoError(t, err)
	assert.Equal(t, record.ID, stored.ID)
	assert.Equal(t, record.Players, stored.Players)
	assert.Equal(t, record.Winner, stored.Winner)
	assert.Equal(t, record.Reason, stored.Reason)
	assert.Equal(t, record.Board, stored.Board)
}

func TestArchiveRepository_GetByID_NotFound(t *testing.T) {
	ctx, st := suite.New(t)

	archiveRepo := NewArchiveRepository(st.Storage)

	// When: reading a record that was never written
	_, err := archiveRepo.GetByID(ctx, "missing")

	// Then: ErrRecordNotFound is returned
	require.ErrorIs(t, err, ErrRecordNotFound)
}
