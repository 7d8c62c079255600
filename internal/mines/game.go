package mines

import (
	"fmt"
	"log/slog"
)

var Log *slog.Logger = slog.Default()

type GameState int8

const (
	New GameState = iota
	Playing
	Won
	Lost
)

func (g GameState) String() string {
	switch g {
	case New:
		return "new"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("GameState(%d)", int8(g))
	}
}

func (g GameState) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// Terminal reports whether only a restart can leave this state.
func (g GameState) Terminal() bool {
	return g == Won || g == Lost
}

/*
Session is one game: the board, its mines, the game state and the timer.

A Session is never modified once it has been returned by the [Engine]; every
transition produces a new value, so older pointers stay valid snapshots.
*/
type Session struct {
	state      GameState
	difficulty Difficulty
	board      Board
	mines      MineSet
	elapsed    int

	// maintained by transitions, see checkCounters in tests
	uncovered int
	flagged   int
	exploded  int
}

// NewSessionWithMines starts a session on a fixed mine layout, for replays
// and tests. The layout must hold exactly d.Mines mines.
func NewSessionWithMines(d Difficulty, m MineSet) (*Session, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if m.Len() != d.Mines || len(m.grid) != d.Size() || m.cols != d.Cols {
		return nil, fmt.Errorf("%w: layout has %d mines, want %d",
			ErrInvalidDifficulty, m.Len(), d.Mines)
	}
	return &Session{
		state:      New,
		difficulty: d,
		board:      newBoard(d),
		mines:      m,
	}, nil
}

// derive copies the session header and shares the board. Callers that
// change tiles must call ownBoard first.
func (s *Session) derive() *Session {
	next := *s
	return &next
}

func (s *Session) ownBoard() {
	s.board = s.board.clone()
}

func (s *Session) State() GameState       { return s.state }
func (s *Session) Difficulty() Difficulty { return s.difficulty }
func (s *Session) Elapsed() int           { return s.elapsed }
func (s *Session) Mines() MineSet         { return s.mines }
func (s *Session) Uncovered() int         { return s.uncovered }
func (s *Session) Flagged() int           { return s.flagged }

// RemainingMines is the mine counter shown to the player. It goes negative
// when more flags than mines are placed.
func (s *Session) RemainingMines() int {
	return s.difficulty.Mines - s.flagged
}

// Board returns a copy of the tiles in row-major order.
func (s *Session) Board() Board {
	return s.board.clone()
}

// Tile panics if c is off the board, like slice indexing.
func (s *Session) Tile(c Coord) TileState {
	if !s.difficulty.Contains(c) {
		panic(fmt.Sprintf("mines: tile %v outside %dx%d board",
			c, s.difficulty.Rows, s.difficulty.Cols))
	}
	return s.board[s.difficulty.index(c)]
}

func (s *Session) IsMine(c Coord) bool {
	return s.mines.Has(c)
}

func (s *Session) AdjacentMines(c Coord) int {
	return AdjacentMines(c, s.mines, s.difficulty)
}

func (s *Session) String() string {
	return s.board.ToString(s.difficulty, s.mines)
}

func (s *Session) setTile(c Coord, t TileState) {
	i := s.difficulty.index(c)
	switch s.board[i] {
	case Uncovered:
		s.uncovered--
	case Flagged:
		s.flagged--
	case Exploded:
		s.exploded--
	}
	switch t {
	case Uncovered:
		s.uncovered++
	case Flagged:
		s.flagged++
	case Exploded:
		s.exploded++
	}
	s.board[i] = t
}

// open runs the flood fill from a safe tile.
func (s *Session) open(c Coord) {
	s.uncovered += reveal(s.board, c, s.mines, s.difficulty)
}

// explode ends the game on the mine at c and shows every other mine.
func (s *Session) explode(c Coord) {
	for m := range s.mines.All() {
		if m != c {
			s.setTile(m, Uncovered)
		}
	}
	s.setTile(c, Exploded)
	s.state = Lost
}

func (s *Session) checkWin() {
	if s.exploded == 0 && s.difficulty.Size()-s.uncovered == s.difficulty.Mines {
		s.state = Won
	}
}
