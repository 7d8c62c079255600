package mines

import "fmt"

// Coord addresses a tile by row and column.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// neighbors returns the in-bounds Chebyshev neighbours of c, excluding c.
func (d Difficulty) neighbors(c Coord) []Coord {
	ns := make([]Coord, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := Coord{Row: c.Row + dr, Col: c.Col + dc}
			if d.Contains(n) {
				ns = append(ns, n)
			}
		}
	}
	return ns
}
