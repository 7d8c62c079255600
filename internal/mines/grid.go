package mines

import (
	"fmt"
	"strings"
)

type TileState int8

const (
	Covered TileState = iota
	Uncovered
	Flagged
	Exploded
)

func (s TileState) String() string {
	switch s {
	case Covered:
		return "covered"
	case Uncovered:
		return "uncovered"
	case Flagged:
		return "flagged"
	case Exploded:
		return "exploded"
	default:
		return fmt.Sprintf("TileState(%d)", int8(s))
	}
}

func (s TileState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Board holds one TileState per tile in row-major order.
type Board []TileState

func newBoard(d Difficulty) Board {
	return make(Board, d.Size()) // Covered is the zero value
}

func (b Board) clone() Board {
	c := make(Board, len(b))
	copy(c, b)
	return c
}

// Count scans the whole board for tiles in state s.
func (b Board) Count(s TileState) (n int) {
	for _, t := range b {
		if t == s {
			n++
		}
	}
	return
}

/*
ToString draws the board one row per line:

	. covered      F flagged
	X exploded     * uncovered mine
	0-8 uncovered tile with its adjacent mine count
*/
func (b Board) ToString(d Difficulty, m MineSet) string {
	var sb strings.Builder
	for row := range d.Rows {
		for col := range d.Cols {
			c := Coord{Row: row, Col: col}
			var ch string
			switch b[d.index(c)] {
			case Covered:
				ch = "."
			case Flagged:
				ch = "F"
			case Exploded:
				ch = "X"
			case Uncovered:
				if m.Has(c) {
					ch = "*"
				} else {
					ch = fmt.Sprint(AdjacentMines(c, m, d))
				}
			}
			fmt.Fprint(&sb, ch+" ")
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
