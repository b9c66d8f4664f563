package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/they4kman/sweepmind/knowledge"
	"github.com/they4kman/sweepmind/util/collections"
)

func TestNewBoardPlacesExactMineCount(t *testing.T) {
	board, err := NewBoard(8, 8, 10, 42)
	require.NoError(t, err)

	count := 0
	for row := 0; row < board.Height(); row++ {
		for col := 0; col < board.Width(); col++ {
			if board.IsMine(knowledge.Cell{Row: row, Col: col}) {
				count++
			}
		}
	}
	assert.Equal(t, 10, count)
}

func TestNewBoardReproducibleFromSeed(t *testing.T) {
	first, err := NewBoard(8, 8, 10, 42)
	require.NoError(t, err)
	second, err := NewBoard(8, 8, 10, 42)
	require.NoError(t, err)

	assert.Equal(t, first.Snapshot(), second.Snapshot())
}

func TestNewBoardRejectsBadParams(t *testing.T) {
	_, err := NewBoard(0, 8, 1, 0)
	assert.Error(t, err)

	_, err = NewBoard(2, 2, 5, 0)
	assert.Error(t, err)
}

func TestNeighborMineCount(t *testing.T) {
	snapshot := &BoardSnapshot{SerializedBoard: "*..\n.*.\n..."}
	board, err := snapshot.CreateBoard()
	require.NoError(t, err)

	assert.Equal(t, 2, board.NeighborMineCount(knowledge.Cell{Row: 0, Col: 1}))
	assert.Equal(t, 1, board.NeighborMineCount(knowledge.Cell{Row: 2, Col: 2}))
	// A mine's own cell is not counted
	assert.Equal(t, 1, board.NeighborMineCount(knowledge.Cell{Row: 0, Col: 0}))
}

func TestNeighborsAtCorner(t *testing.T) {
	board, err := NewBoard(3, 3, 0, 1)
	require.NoError(t, err)

	neighbors := board.Neighbors(knowledge.Cell{Row: 0, Col: 0})
	assert.Len(t, neighbors, 3)
	assert.NotContains(t, neighbors, knowledge.Cell{Row: 0, Col: 0})
}

func TestWon(t *testing.T) {
	snapshot := &BoardSnapshot{SerializedBoard: "*.\n.*"}
	board, err := snapshot.CreateBoard()
	require.NoError(t, err)

	found := collections.NewSet(knowledge.Cell{Row: 0, Col: 0})
	assert.False(t, board.Won(found))

	found.Add(knowledge.Cell{Row: 1, Col: 1})
	assert.True(t, board.Won(found))

	found.Add(knowledge.Cell{Row: 0, Col: 1})
	assert.False(t, board.Won(found))
}

func TestSnapshotRoundTrip(t *testing.T) {
	board, err := NewBoard(4, 5, 6, 99)
	require.NoError(t, err)

	serialized, err := board.Snapshot().Serialize()
	require.NoError(t, err)

	snapshot, err := LoadSnapshot(serialized)
	require.NoError(t, err)

	loaded, err := snapshot.CreateBoard()
	require.NoError(t, err)

	assert.Equal(t, board.Height(), loaded.Height())
	assert.Equal(t, board.Width(), loaded.Width())
	assert.Equal(t, board.NumMines(), loaded.NumMines())
	for row := 0; row < board.Height(); row++ {
		for col := 0; col < board.Width(); col++ {
			cell := knowledge.Cell{Row: row, Col: col}
			assert.Equal(t, board.IsMine(cell), loaded.IsMine(cell))
		}
	}
}

func TestCreateBoardRejectsRaggedRows(t *testing.T) {
	snapshot := &BoardSnapshot{SerializedBoard: "*.\n..."}
	_, err := snapshot.CreateBoard()
	assert.Error(t, err)
}

func TestBoardString(t *testing.T) {
	snapshot := &BoardSnapshot{SerializedBoard: "*.\n.."}
	board, err := snapshot.CreateBoard()
	require.NoError(t, err)

	assert.Equal(t, "-----\n|X| |\n-----\n| | |\n-----\n", board.String())
}
