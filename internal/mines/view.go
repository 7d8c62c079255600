package mines

// TileView is what a renderer may know about one tile.
type TileView struct {
	State    TileState `json:"state"`
	Mine     bool      `json:"mine,omitempty"`
	Adjacent int       `json:"adjacent,omitempty"`
}

type View struct {
	Difficulty     Difficulty   `json:"difficulty"`
	State          GameState    `json:"state"`
	Elapsed        int          `json:"elapsed"`
	RemainingMines int          `json:"remaining_mines"`
	Tiles          [][]TileView `json:"tiles"`
}

// NewView renders s for a client. Mines stay hidden on covered and flagged
// tiles until the game is over.
func NewView(s *Session) View {
	d := s.difficulty
	over := s.state.Terminal()
	tiles := make([][]TileView, d.Rows)
	for row := range d.Rows {
		tiles[row] = make([]TileView, d.Cols)
		for col := range d.Cols {
			c := Coord{Row: row, Col: col}
			t := TileView{State: s.board[d.index(c)]}
			if over || t.State == Uncovered || t.State == Exploded {
				t.Mine = s.mines.Has(c)
			}
			if t.State == Uncovered && !t.Mine {
				t.Adjacent = s.AdjacentMines(c)
			}
			tiles[row][col] = t
		}
	}
	return View{
		Difficulty:     d,
		State:          s.state,
		Elapsed:        s.elapsed,
		RemainingMines: s.RemainingMines(),
		Tiles:          tiles,
	}
}
