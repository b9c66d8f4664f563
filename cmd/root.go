package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/they4kman/sweepmind/game"
)

var log = logrus.StandardLogger()

var (
	boardHeight  int
	boardWidth   int
	numMines     int
	seed         int64
	numGames     int
	verbose      bool
	snapshotsDir string
)

var rootCmd = &cobra.Command{
	Use:   "sweepmind",
	Short: "Play computer-driven Minesweeper",
	Long: `sweepmind plays Minesweeper by itself: it deduces provably safe
cells from the numbers it uncovers, and when deduction runs dry it picks
the cell least likely to hide a mine.

Play a single default game
	sweepmind

Measure the win rate over a thousand expert boards
	sweepmind -n 1000 -h 16 -w 30 -m 99
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rnd := rand.New(rand.NewSource(seed))

		wins := 0
		guesses := 0
		for i := 0; i < numGames; i++ {
			board, err := game.NewBoard(boardHeight, boardWidth, numMines, rnd.Int63())
			if err != nil {
				return err
			}

			result := game.NewGame(board, rnd).Play()
			if result.Outcome == game.Won {
				wins++
			}
			guesses += result.NumGuesses

			log.WithFields(logrus.Fields{
				"game":    i + 1,
				"outcome": result.Outcome,
				"moves":   result.NumMoves,
				"guesses": result.NumGuesses,
				"last":    result.LastMove,
			}).Info("game over")

			if err := saveSnapshot(board, result); err != nil {
				log.WithError(err).Warn("could not save snapshot")
			}
		}

		fmt.Printf("won %d of %d games (%.1f%%), %d guesses total\n",
			wins, numGames, 100*float64(wins)/float64(numGames), guesses)
		return nil
	},
}

func saveSnapshot(board *game.Board, result game.Result) error {
	if snapshotsDir == "" {
		return nil
	}

	if err := os.MkdirAll(snapshotsDir, 0777); err != nil {
		return err
	}

	serialized, err := board.Snapshot().Serialize()
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("%s_%s.yaml", time.Now().Format("20060102_150405"), result.Outcome)
	return os.WriteFile(filepath.Join(snapshotsDir, filename), []byte(serialized), 0666)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Define our root --help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.Flags().Bool("help", false, "Help for this command")

	rootCmd.Flags().IntVarP(&boardHeight, "height", "h", 8, "Height of game board, in cells")
	rootCmd.Flags().IntVarP(&boardWidth, "width", "w", 8, "Width of game board, in cells")
	rootCmd.Flags().IntVarP(&numMines, "mines", "m", 8, "Number of mines to place in the game board")
	rootCmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Seed for mine placement and guessing (0 seeds from the clock)")
	rootCmd.Flags().IntVarP(&numGames, "games", "n", 1, "Number of games to play")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every deduction and move")
	rootCmd.Flags().StringVar(&snapshotsDir, "snapshots", "", "Directory to save finished board snapshots to")
}
