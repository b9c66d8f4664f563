package knowledge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/they4kman/sweepmind/util/collections"
)

// Sentence is a logical statement about the board: of the cells in its set,
// exactly count are mines. Sentences only ever hold undetermined cells —
// once a cell is resolved safe or mine, it is removed from the set via
// MarkSafe/MarkMine.
type Sentence struct {
	cells collections.Set[Cell]
	count int
}

// NewSentence copies the given cell set, so the caller may keep mutating
// its own set afterwards.
func NewSentence(cells collections.Set[Cell], count int) *Sentence {
	return &Sentence{
		cells: cells.Copy(),
		count: count,
	}
}

func (sentence *Sentence) Count() int {
	return sentence.count
}

func (sentence *Sentence) NumCells() int {
	return len(sentence.cells)
}

// Cells returns a copy of the sentence's undetermined cells
func (sentence *Sentence) Cells() collections.Set[Cell] {
	return sentence.cells.Copy()
}

// Contains returns whether the cell is still undetermined in this sentence
func (sentence *Sentence) Contains(cell Cell) bool {
	return sentence.cells.Contains(cell)
}

// Equal returns whether both sentences state the same fact: same cell set,
// same count
func (sentence *Sentence) Equal(other *Sentence) bool {
	return sentence.count == other.count && sentence.cells.Equal(other.cells)
}

// MineProbability returns the chance any single cell of the sentence is a
// mine, assuming mines are evenly distributed among its cells
func (sentence *Sentence) MineProbability() float64 {
	return float64(sentence.count) / float64(len(sentence.cells))
}

// KnownMines returns a snapshot of all cells provably mines: when the count
// equals the number of cells, every cell must hold a mine. The count > 0
// guard keeps an exhausted sentence ({} = 0) from reading as "all mines".
// Returns nil when nothing can be concluded.
func (sentence *Sentence) KnownMines() collections.Set[Cell] {
	if sentence.count != 0 && sentence.count == len(sentence.cells) {
		return sentence.cells.Copy()
	}
	return nil
}

// KnownSafes returns a snapshot of all cells provably safe: when the count
// is zero, no cell holds a mine. Returns nil when nothing can be concluded.
func (sentence *Sentence) KnownSafes() collections.Set[Cell] {
	if sentence.count == 0 {
		return sentence.cells.Copy()
	}
	return nil
}

// MarkMine records that cell is a mine. The cell leaves the undetermined
// set and the count drops by one, since that mine is now accounted for.
// No-op if the sentence doesn't mention the cell.
func (sentence *Sentence) MarkMine(cell Cell) {
	if sentence.cells.Contains(cell) {
		sentence.cells.Remove(cell)
		sentence.count--
	}
}

// MarkSafe records that cell is not a mine. The cell leaves the
// undetermined set; the count is untouched, as all remaining mines sit
// among the other cells. No-op if the sentence doesn't mention the cell.
func (sentence *Sentence) MarkSafe(cell Cell) {
	if sentence.cells.Contains(cell) {
		sentence.cells.Remove(cell)
	}
}

func (sentence *Sentence) String() string {
	cells := make([]Cell, 0, len(sentence.cells))
	for cell := range sentence.cells {
		cells = append(cells, cell)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})

	var cellsRepr strings.Builder
	for i, cell := range cells {
		cellsRepr.WriteString(cell.String())
		if i != len(cells)-1 {
			cellsRepr.WriteString(", ")
		}
	}

	return fmt.Sprintf("{%s} = %d", cellsRepr.String(), sentence.count)
}
