package game

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/they4kman/sweepmind/knowledge"
	"github.com/they4kman/sweepmind/util/collections"
)

// BoardSnapshot is a YAML-serializable record of a board's mine layout,
// used to save finished games and replay interesting layouts.
type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	SerializedBoard string `yaml:"board,flow"`
}

// Snapshot captures the board's layout: one line per row, '*' for mines,
// '.' for clear cells.
func (board *Board) Snapshot() *BoardSnapshot {
	var rows []string
	for row := 0; row < board.height; row++ {
		var builder strings.Builder
		for col := 0; col < board.width; col++ {
			if board.mines.Contains(knowledge.Cell{Row: row, Col: col}) {
				builder.WriteString("*")
			} else {
				builder.WriteString(".")
			}
		}
		rows = append(rows, builder.String())
	}

	return &BoardSnapshot{
		Seed:            board.seed,
		SerializedBoard: strings.Join(rows, "\n"),
	}
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("serializing snapshot: %w", err)
	}
	return string(out), nil
}

// CreateBoard rebuilds a board from the snapshot's layout
func (snapshot *BoardSnapshot) CreateBoard() (*Board, error) {
	rows := strings.Split(snapshot.SerializedBoard, "\n")
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("snapshot holds an empty board")
	}

	height := len(rows)
	width := len(rows[0])
	mines := make(collections.Set[knowledge.Cell])

	for row, line := range rows {
		if len(line) != width {
			return nil, fmt.Errorf("snapshot row %d has %d cells, want %d", row, len(line), width)
		}
		for col, c := range line {
			switch c {
			case '*':
				mines.Add(knowledge.Cell{Row: row, Col: col})
			case '.':
			default:
				return nil, fmt.Errorf("snapshot holds unknown cell %q at (%d, %d)", c, row, col)
			}
		}
	}

	return &Board{
		height:   height,
		width:    width,
		numMines: len(mines),
		seed:     snapshot.Seed,
		mines:    mines,
	}, nil
}

// LoadSnapshot parses a YAML snapshot previously produced by Serialize
func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &snapshot, nil
}
