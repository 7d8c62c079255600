package mines

// AdjacentMines counts mines among the 8 neighbours of c. Neighbours off
// the board are skipped.
func AdjacentMines(c Coord, m MineSet, d Difficulty) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nc := Coord{Row: c.Row + dr, Col: c.Col + dc}
			if d.Contains(nc) && m.Has(nc) {
				n++
			}
		}
	}
	return n
}
