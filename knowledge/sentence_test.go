package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/they4kman/sweepmind/util/collections"
)

func cells(pairs ...[2]int) collections.Set[Cell] {
	set := make(collections.Set[Cell])
	for _, pair := range pairs {
		set.Add(Cell{Row: pair[0], Col: pair[1]})
	}
	return set
}

func TestSentenceCopiesCells(t *testing.T) {
	source := cells([2]int{0, 0}, [2]int{0, 1})
	sentence := NewSentence(source, 1)

	source.Add(Cell{Row: 5, Col: 5})

	assert.Equal(t, 2, sentence.NumCells())
	assert.False(t, sentence.Contains(Cell{Row: 5, Col: 5}))
	assert.True(t, sentence.Cells().Equal(cells([2]int{0, 0}, [2]int{0, 1})))
}

func TestKnownMines(t *testing.T) {
	sentence := NewSentence(cells([2]int{0, 0}, [2]int{0, 1}), 2)

	mines := sentence.KnownMines()
	assert.True(t, mines.Contains(Cell{Row: 0, Col: 0}))
	assert.True(t, mines.Contains(Cell{Row: 0, Col: 1}))
	assert.Len(t, mines, 2)
}

func TestKnownMinesInconclusive(t *testing.T) {
	sentence := NewSentence(cells([2]int{0, 0}, [2]int{0, 1}), 1)
	assert.Nil(t, sentence.KnownMines())
}

func TestKnownMinesEmptySentence(t *testing.T) {
	// {} = 0 satisfies count == len(cells), but concludes nothing
	sentence := NewSentence(cells(), 0)
	assert.Nil(t, sentence.KnownMines())
}

func TestKnownSafes(t *testing.T) {
	sentence := NewSentence(cells([2]int{1, 1}, [2]int{1, 2}), 0)

	safes := sentence.KnownSafes()
	assert.True(t, safes.Contains(Cell{Row: 1, Col: 1}))
	assert.True(t, safes.Contains(Cell{Row: 1, Col: 2}))
	assert.Len(t, safes, 2)
}

func TestKnownSafesEmptySentence(t *testing.T) {
	// Vacuously safe: an empty zero-count sentence yields the empty set
	sentence := NewSentence(cells(), 0)
	assert.NotNil(t, sentence.KnownSafes())
	assert.Len(t, sentence.KnownSafes(), 0)
}

func TestKnownSafesInconclusive(t *testing.T) {
	sentence := NewSentence(cells([2]int{1, 1}, [2]int{1, 2}), 1)
	assert.Nil(t, sentence.KnownSafes())
}

func TestMarkMine(t *testing.T) {
	sentence := NewSentence(cells([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}), 2)

	sentence.MarkMine(Cell{Row: 0, Col: 1})

	assert.Equal(t, 1, sentence.Count())
	assert.Equal(t, 2, sentence.NumCells())
	assert.False(t, sentence.Contains(Cell{Row: 0, Col: 1}))
}

func TestMarkMineAbsentCell(t *testing.T) {
	sentence := NewSentence(cells([2]int{0, 0}), 1)

	sentence.MarkMine(Cell{Row: 9, Col: 9})

	assert.Equal(t, 1, sentence.Count())
	assert.Equal(t, 1, sentence.NumCells())
}

func TestMarkSafeKeepsCount(t *testing.T) {
	sentence := NewSentence(cells([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}), 1)

	sentence.MarkSafe(Cell{Row: 0, Col: 2})

	assert.Equal(t, 1, sentence.Count())
	assert.Equal(t, 2, sentence.NumCells())
}

func TestMarkMineThenSafeDistinctCells(t *testing.T) {
	sentence := NewSentence(cells([2]int{0, 0}, [2]int{0, 1}, [2]int{0, 2}), 1)

	sentence.MarkMine(Cell{Row: 0, Col: 0})
	sentence.MarkSafe(Cell{Row: 0, Col: 1})
	// Repeats on already-removed cells are no-ops
	sentence.MarkMine(Cell{Row: 0, Col: 0})
	sentence.MarkSafe(Cell{Row: 0, Col: 1})

	assert.GreaterOrEqual(t, sentence.Count(), 0)
	assert.Equal(t, 0, sentence.Count())
	assert.Equal(t, 1, sentence.NumCells())
}

func TestSentenceEqual(t *testing.T) {
	a := NewSentence(cells([2]int{0, 0}, [2]int{0, 1}), 1)
	b := NewSentence(cells([2]int{0, 1}, [2]int{0, 0}), 1)
	c := NewSentence(cells([2]int{0, 0}, [2]int{0, 1}), 2)
	d := NewSentence(cells([2]int{0, 0}), 1)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestSentenceString(t *testing.T) {
	sentence := NewSentence(cells([2]int{1, 0}, [2]int{0, 1}), 1)
	assert.Equal(t, "{(0, 1), (1, 0)} = 1", sentence.String())
}
