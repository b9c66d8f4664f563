package game

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/they4kman/sweepmind/knowledge"
	"github.com/they4kman/sweepmind/util/collections"
)

var log = logrus.StandardLogger()

// Result describes a finished game
type Result struct {
	Outcome Outcome

	// Total cells revealed
	NumMoves int
	// Moves made without a proof of safety
	NumGuesses int
	// The final cell played; on a loss, the mine that ended the game
	LastMove knowledge.Cell
	// Whether the engine had identified every mine by game end
	AllMinesFound bool
}

// Game drives one engine through one board: reveal a provably safe cell
// when one exists, otherwise gamble on the least likely mine, and feed each
// observation back into the engine.
type Game struct {
	board  *Board
	engine *knowledge.Engine
}

// NewGame creates a game over board. rnd drives the engine's guesswork;
// pass nil for a time-seeded source.
func NewGame(board *Board, rnd *rand.Rand) *Game {
	return &Game{
		board:  board,
		engine: knowledge.NewEngine(board.Height(), board.Width(), board.NumMines(), rnd),
	}
}

// Engine exposes the game's inference engine, e.g. for inspecting what was
// deduced after Play returns.
func (game *Game) Engine() *knowledge.Engine {
	return game.engine
}

// Play runs the game to completion: won once every mine-free cell is
// revealed, lost the moment a gamble hits a mine.
func (game *Game) Play() Result {
	var result Result

	safeCells := game.board.NumCells() - game.board.NumMines()
	revealed := make(collections.Set[knowledge.Cell])

	for len(revealed) < safeCells {
		cell, safe := game.engine.MakeSafeMove()
		if !safe {
			var ok bool
			if cell, ok = game.engine.MakeRandomMove(); !ok {
				// Every remaining cell is a proven mine
				break
			}
			result.NumGuesses++
		}

		result.NumMoves++
		result.LastMove = cell

		log.WithFields(logrus.Fields{
			"cell": cell,
			"safe": safe,
		}).Debug("revealing")

		if game.board.IsMine(cell) {
			result.Outcome = Lost
			result.AllMinesFound = false
			return result
		}

		revealed.Add(cell)
		game.engine.AddKnowledge(cell, game.board.NeighborMineCount(cell))
	}

	result.Outcome = Won
	result.AllMinesFound = game.board.Won(game.engine.Mines())
	return result
}
