package knowledge

import "fmt"

// Cell identifies a single board position. Cells are plain values: two
// cells with the same coordinates are the same cell, and a Cell may be
// used freely as a map key.
type Cell struct {
	Row, Col int
}

func (cell Cell) String() string {
	return fmt.Sprintf("(%d, %d)", cell.Row, cell.Col)
}
