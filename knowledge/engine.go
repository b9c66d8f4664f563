package knowledge

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/sweepmind/util/collections"
)

var log = logrus.StandardLogger()

// Engine accumulates board observations and deduces which cells must be
// mines and which must be safe. It owns its knowledge base and fact sets
// outright, and is strictly single-threaded: callers embedding it in a
// concurrent host must serialize access themselves.
type Engine struct {
	height, width int
	numMines      int

	movesMade collections.Set[Cell]
	safes     collections.Set[Cell]
	mines     collections.Set[Cell]

	sentences []*Sentence

	rand *rand.Rand
}

// NewEngine creates an engine for a height x width board holding numMines
// mines in total. rnd drives tie-breaking in MakeRandomMove; pass nil for a
// time-seeded source.
func NewEngine(height, width, numMines int, rnd *rand.Rand) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		height:    height,
		width:     width,
		numMines:  numMines,
		movesMade: make(collections.Set[Cell]),
		safes:     make(collections.Set[Cell]),
		mines:     make(collections.Set[Cell]),
		rand:      rnd,
	}
}

// Mines returns a copy of all cells proven to hold mines
func (engine *Engine) Mines() collections.Set[Cell] {
	return engine.mines.Copy()
}

// Safes returns a copy of all cells proven safe
func (engine *Engine) Safes() collections.Set[Cell] {
	return engine.safes.Copy()
}

// MovesMade returns a copy of all cells already played
func (engine *Engine) MovesMade() collections.Set[Cell] {
	return engine.movesMade.Copy()
}

// NumSentences returns the current size of the knowledge base
func (engine *Engine) NumSentences() int {
	return len(engine.sentences)
}

// MarkMine records that cell holds a mine and propagates the fact through
// every sentence in the knowledge base.
func (engine *Engine) MarkMine(cell Cell) {
	engine.mines.Add(cell)
	for _, sentence := range engine.sentences {
		sentence.MarkMine(cell)
	}
}

// MarkSafe records that cell is free of mines and propagates the fact
// through every sentence in the knowledge base.
func (engine *Engine) MarkSafe(cell Cell) {
	engine.safes.Add(cell)
	for _, sentence := range engine.sentences {
		sentence.MarkSafe(cell)
	}
}

// AddKnowledge ingests one board observation: cell has just been revealed
// safe, and count of its neighbors hold mines. The observation becomes a new
// sentence over the still-undetermined neighbors, and deduction then runs to
// a fixed point.
//
// Feeding an observation inconsistent with established facts (one that would
// force a sentence's count negative, or past its cell capacity) is a caller
// bug and panics rather than corrupting the knowledge base.
func (engine *Engine) AddKnowledge(cell Cell, count int) {
	engine.movesMade.Add(cell)
	engine.MarkSafe(cell)

	undetermined := make(collections.Set[Cell])
	for _, neighbor := range engine.neighbors(cell) {
		switch {
		case engine.safes.Contains(neighbor):
			// already accounted for; carries no mines
		case engine.mines.Contains(neighbor):
			count--
		default:
			undetermined.Add(neighbor)
		}
	}

	if count < 0 || count > len(undetermined) {
		panic(fmt.Sprintf(
			"knowledge: inconsistent observation at %v: %d mines among %d undetermined neighbors",
			cell, count, len(undetermined),
		))
	}

	sentence := NewSentence(undetermined, count)
	if engine.addSentence(sentence) {
		log.WithFields(logrus.Fields{
			"cell":     cell,
			"sentence": sentence,
		}).Debug("observed")
	}

	engine.deduce()
}

// MakeSafeMove returns a cell proven safe that hasn't been played yet. The
// engine's state is left untouched; recording the move is on the caller,
// normally through the AddKnowledge that follows. Returns false when no
// unplayed safe cell is known.
func (engine *Engine) MakeSafeMove() (Cell, bool) {
	for cell := range engine.safes {
		if !engine.movesMade.Contains(cell) {
			return cell, true
		}
	}
	return Cell{}, false
}

// MakeRandomMove returns the unplayed, unmined cell with the lowest
// estimated chance of holding a mine, chosen uniformly at random among
// ties. Cells not covered by any sentence get the baseline estimate of
// remaining mines over remaining cells; cells covered by a sentence take
// that sentence's count/size ratio, with later sentences in the scan
// overriding earlier ones. Returns false when every cell has been played
// or proven a mine.
func (engine *Engine) MakeRandomMove() (Cell, bool) {
	numCandidates := engine.height*engine.width - len(engine.movesMade) - len(engine.mines)
	if numCandidates == 0 {
		return Cell{}, false
	}
	baseline := float64(engine.numMines-len(engine.mines)) / float64(numCandidates)

	probabilities := make(map[Cell]float64, numCandidates)
	for row := 0; row < engine.height; row++ {
		for col := 0; col < engine.width; col++ {
			cell := Cell{Row: row, Col: col}
			if !engine.movesMade.Contains(cell) && !engine.mines.Contains(cell) {
				probabilities[cell] = baseline
			}
		}
	}

	engine.dropEmptySentences()
	for _, sentence := range engine.sentences {
		probability := sentence.MineProbability()
		for cell := range sentence.cells {
			if _, eligible := probabilities[cell]; eligible {
				probabilities[cell] = probability
			}
		}
	}

	lowest := math.Inf(1)
	for _, probability := range probabilities {
		if probability < lowest {
			lowest = probability
		}
	}

	var best []Cell
	for cell, probability := range probabilities {
		if probability == lowest {
			best = append(best, cell)
		}
	}
	return best[engine.rand.Intn(len(best))], true
}

// verdict is a single resolved fact awaiting propagation
type verdict struct {
	cell Cell
	mine bool
}

// deduce runs both inference rules to a fixed point: direct conclusions
// from single sentences, then new sentences from subset resolution, until a
// full round derives nothing new. Termination is guaranteed since every
// round either shrinks cell sets or grows the finite, deduplicated
// knowledge base over a fixed cell universe.
func (engine *Engine) deduce() {
	for {
		changed := engine.applyConclusions()
		if engine.resolveSubsets() {
			changed = true
		}
		engine.dropEmptySentences()

		if !changed {
			return
		}
	}
}

// applyConclusions scans every sentence for cells provably mines or safes
// and marks them. Conclusions are snapshotted into a work queue before any
// marking happens, since marking mutates the very sentences being read.
// Rescans until a pass yields nothing.
func (engine *Engine) applyConclusions() bool {
	changed := false
	var pending deque.Deque[verdict]

	for {
		for _, sentence := range engine.sentences {
			for cell := range sentence.KnownMines() {
				if !engine.mines.Contains(cell) {
					pending.PushBack(verdict{cell: cell, mine: true})
				}
			}
			for cell := range sentence.KnownSafes() {
				if !engine.safes.Contains(cell) {
					pending.PushBack(verdict{cell: cell, mine: false})
				}
			}
		}

		if pending.Len() == 0 {
			return changed
		}
		changed = true

		for pending.Len() > 0 {
			v := pending.PopFront()
			if v.mine {
				engine.MarkMine(v.cell)
				log.WithField("cell", v.cell).Debug("deduced mine")
			} else {
				engine.MarkSafe(v.cell)
				log.WithField("cell", v.cell).Debug("deduced safe")
			}
		}
	}
}

// resolveSubsets applies subset resolution across all sentence pairs: when
// A's cells are a strict subset of B's, the cells exclusive to B hold
// exactly B.count - A.count mines. Derived sentences join the scan as they
// are appended, so chains of resolutions complete in one call.
func (engine *Engine) resolveSubsets() bool {
	added := false

	for i := 0; i < len(engine.sentences); i++ {
		a := engine.sentences[i]
		if a.count <= 0 || a.NumCells() == 0 {
			continue
		}

		for j := 0; j < len(engine.sentences); j++ {
			b := engine.sentences[j]
			if i == j || b.count <= 0 || a.NumCells() >= b.NumCells() {
				continue
			}
			if !a.cells.IsSubsetOf(b.cells) {
				continue
			}

			derived := &Sentence{
				cells: b.cells.Difference(a.cells),
				count: b.count - a.count,
			}
			if engine.addSentence(derived) {
				added = true
				log.WithFields(logrus.Fields{
					"subset":   a,
					"superset": b,
					"derived":  derived,
				}).Debug("resolved")
			}
		}
	}

	return added
}

// addSentence appends a sentence to the knowledge base, refusing empty
// sentences and structural duplicates. Reports whether the base grew.
func (engine *Engine) addSentence(sentence *Sentence) bool {
	if sentence.NumCells() == 0 {
		return false
	}
	for _, existing := range engine.sentences {
		if existing.Equal(sentence) {
			return false
		}
	}
	engine.sentences = append(engine.sentences, sentence)
	return true
}

// dropEmptySentences removes sentences whose cells have all been resolved;
// they carry no further information.
func (engine *Engine) dropEmptySentences() {
	kept := engine.sentences[:0]
	for _, sentence := range engine.sentences {
		if sentence.NumCells() > 0 {
			kept = append(kept, sentence)
		}
	}
	engine.sentences = kept
}

// neighbors returns the in-bounds cells of the 3x3 neighborhood around
// cell, excluding cell itself.
func (engine *Engine) neighbors(cell Cell) []Cell {
	neighbors := make([]Cell, 0, 8)
	for row := cell.Row - 1; row <= cell.Row+1; row++ {
		for col := cell.Col - 1; col <= cell.Col+1; col++ {
			neighbor := Cell{Row: row, Col: col}
			if neighbor == cell {
				continue
			}
			if row < 0 || row >= engine.height || col < 0 || col >= engine.width {
				continue
			}
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}
