package game

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/they4kman/sweepmind/knowledge"
	"github.com/they4kman/sweepmind/util/collections"
)

// Board is the ground truth of a single game: a rectangular grid with a
// fixed set of mines. The board is never mutated once created; the game
// loop only queries it.
type Board struct {
	height, width int
	numMines      int
	seed          int64

	mines collections.Set[knowledge.Cell]
}

// NewBoard creates a height x width board with numMines mines placed
// uniformly at random from the given seed.
func NewBoard(height, width, numMines int, seed int64) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("invalid board dimensions %dx%d", height, width)
	}
	if numMines < 0 || numMines > height*width {
		return nil, fmt.Errorf("cannot place %d mines on a %dx%d board", numMines, height, width)
	}

	board := &Board{
		height:   height,
		width:    width,
		numMines: numMines,
		seed:     seed,
		mines:    make(collections.Set[knowledge.Cell]),
	}

	rnd := rand.New(rand.NewSource(seed))
	for _, idx := range rnd.Perm(height * width)[:numMines] {
		board.mines.Add(knowledge.Cell{Row: idx / width, Col: idx % width})
	}

	return board, nil
}

func (board *Board) Height() int {
	return board.height
}

func (board *Board) Width() int {
	return board.width
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) NumCells() int {
	return board.height * board.width
}

func (board *Board) Seed() int64 {
	return board.seed
}

// InBounds returns whether cell lies on the board
func (board *Board) InBounds(cell knowledge.Cell) bool {
	return cell.Row >= 0 && cell.Row < board.height &&
		cell.Col >= 0 && cell.Col < board.width
}

// IsMine returns whether cell holds a mine
func (board *Board) IsMine(cell knowledge.Cell) bool {
	return board.mines.Contains(cell)
}

// Neighbors returns the in-bounds cells within one row and column of cell,
// excluding cell itself
func (board *Board) Neighbors(cell knowledge.Cell) []knowledge.Cell {
	neighbors := make([]knowledge.Cell, 0, 8)
	for row := cell.Row - 1; row <= cell.Row+1; row++ {
		for col := cell.Col - 1; col <= cell.Col+1; col++ {
			neighbor := knowledge.Cell{Row: row, Col: col}
			if neighbor != cell && board.InBounds(neighbor) {
				neighbors = append(neighbors, neighbor)
			}
		}
	}
	return neighbors
}

// NeighborMineCount returns the number of mines within one row and column
// of cell, not counting cell itself
func (board *Board) NeighborMineCount(cell knowledge.Cell) int {
	count := 0
	for _, neighbor := range board.Neighbors(cell) {
		if board.mines.Contains(neighbor) {
			count++
		}
	}
	return count
}

// Won returns whether found identifies every mine on the board, with no
// false positives
func (board *Board) Won(found collections.Set[knowledge.Cell]) bool {
	return board.mines.Equal(found)
}

// String renders the mine layout as a text grid, one row per line, with X
// marking mines.
func (board *Board) String() string {
	var builder strings.Builder
	rule := strings.Repeat("--", board.width) + "-\n"

	for row := 0; row < board.height; row++ {
		builder.WriteString(rule)
		for col := 0; col < board.width; col++ {
			if board.mines.Contains(knowledge.Cell{Row: row, Col: col}) {
				builder.WriteString("|X")
			} else {
				builder.WriteString("| ")
			}
		}
		builder.WriteString("|\n")
	}
	builder.WriteString(rule)

	return builder.String()
}
