package connectfour

import (
	"github.com/dropfour/connectfour-backend/internal/apperror"
)

const (
	Rows    = 6
	Columns = 7

	EmptyCell = ""

	winLength = 4
)

// Board is a 6x7 grid; row 0 is the top, row 5 the bottom. A cell holds
// the owning player's ID, or EmptyCell. Board is an array type, so passing
// one by value copies it — the functions below never touch their input.
type Board [Rows][Columns]string

// directions checked per cell, in order: horizontal, vertical,
// diagonal down-right, diagonal up-right.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{-1, 1},
}

// DropRow resolves a gravity drop in the given column: the lowest empty row,
// scanning from the bottom up. Returns ErrColumnFull when no cell is free.
// The column index must already be validated by the caller.
func DropRow(board Board, column int) (int, error) {
	for row := Rows - 1; row >= 0; row-- {
		if board[row][column] == EmptyCell {
			return row, nil
		}
	}

	return 0, apperror.ErrColumnFull
}

// Winner scans for four identically-owned cells in a straight line and
// returns the owner of the first run found, or EmptyCell when there is none.
// Cells are visited rows top-to-bottom, then columns left-to-right, so the
// result is deterministic for any board.
func Winner(board Board) string {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			owner := board[row][col]
			if owner == EmptyCell {
				continue
			}

			for _, dir := range directions {
				if hasRun(board, row, col, dir[0], dir[1], owner) {
					return owner
				}
			}
		}
	}

	return EmptyCell
}

// IsFull reports whether every column is filled to the top.
func IsFull(board Board) bool {
	for col := 0; col < Columns; col++ {
		if board[0][col] == EmptyCell {
			return false
		}
	}

	return true
}

func hasRun(board Board, row, col, rowStep, colStep int, owner string) bool {
	for i := 1; i < winLength; i++ {
		r := row + rowStep*i
		c := col + colStep*i

		if r < 0 || r >= Rows || c >= Columns {
			return false
		}

		if board[r][c] != owner {
			return false
		}
	}

	return true
}
