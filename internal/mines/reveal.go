package mines

import "github.com/gammazero/deque"

/*
reveal uncovers start and flood-fills outwards from it through tiles with no
adjacent mines. Tiles on the border of such a region are uncovered but not
expanded. Only Covered tiles change state, so flags and explosions survive.

The board is modified in place; callers pass a copy. It returns the number
of tiles that went from Covered to Uncovered.
*/
func reveal(b Board, start Coord, m MineSet, d Difficulty) int {
	si := d.index(start)
	if b[si] != Covered {
		return 0
	}

	visited := make([]bool, len(b))
	visited[si] = true

	var todo deque.Deque[Coord]
	todo.PushBack(start)

	opened := 0
	for todo.Len() > 0 {
		c := todo.PopFront()
		b[d.index(c)] = Uncovered
		opened++

		if AdjacentMines(c, m, d) != 0 {
			continue
		}
		for _, n := range d.neighbors(c) {
			i := d.index(n)
			if visited[i] || b[i] != Covered {
				continue
			}
			visited[i] = true
			todo.PushBack(n)
		}
	}
	return opened
}
