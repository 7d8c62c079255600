package mines

import "iter"

// MineSet is an immutable set of mine coordinates on a board.
type MineSet struct {
	grid  []bool // real mine points, row-major
	cols  int
	count int
}

// NewMineSet builds a set from explicit coordinates. Duplicates collapse
// and out-of-bounds coordinates yield [ErrOutOfBounds].
func NewMineSet(d Difficulty, coords ...Coord) (MineSet, error) {
	grid := make([]bool, d.Size())
	count := 0
	for _, c := range coords {
		if !d.Contains(c) {
			return MineSet{}, ErrOutOfBounds
		}
		if i := d.index(c); !grid[i] {
			grid[i] = true
			count++
		}
	}
	return MineSet{grid: grid, cols: d.Cols, count: count}, nil
}

func (m MineSet) Has(c Coord) bool {
	if c.Row < 0 || c.Col < 0 || c.Col >= m.cols {
		return false
	}
	i := c.Row*m.cols + c.Col
	return i < len(m.grid) && m.grid[i]
}

func (m MineSet) Len() int {
	return m.count
}

// All yields the mines in row-major order.
func (m MineSet) All() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for i, mine := range m.grid {
			if mine && !yield(Coord{Row: i / m.cols, Col: i % m.cols}) {
				return
			}
		}
	}
}
