package mines

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
)

// Engine applies actions to sessions. It owns the random source used for
// mine layouts and is safe for concurrent use.
type Engine struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewEngine(r *rand.Rand) *Engine {
	return &Engine{rnd: r}
}

func (e *Engine) generate(d Difficulty, avoid *Coord) (MineSet, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return GenerateMines(d, avoid, e.rnd)
}

// NewSession creates a session in state [New] with a fresh mine layout.
func (e *Engine) NewSession(d Difficulty) (*Session, error) {
	m, err := e.generate(d, nil)
	if err != nil {
		return nil, err
	}
	return NewSessionWithMines(d, m)
}

/*
Apply computes the session that follows s after a. Rejected actions return
s itself together with the reason; no-ops (moves after the game ended,
clicks on revealed tiles) return s and a nil error. s may be nil only for
[Restart].
*/
func (e *Engine) Apply(s *Session, a Action) (*Session, error) {
	if s == nil {
		if _, ok := a.(Restart); !ok {
			return nil, ErrNoSession
		}
	}

	switch a := a.(type) {
	case Restart:
		return e.restart(s, a.Difficulty)
	case Uncover:
		return e.uncover(s, a.Coord)
	case ToggleFlag:
		return toggleFlag(s, a.Coord)
	case Chord:
		return chord(s, a.Coord)
	case TimerTick:
		return tick(s), nil
	default:
		Log.Warn("unknown action", slog.String("type", fmt.Sprintf("%T", a)))
		return s, ErrUnknownAction
	}
}

func (e *Engine) restart(s *Session, d Difficulty) (*Session, error) {
	if d.IsZero() {
		d = Beginner
		if s != nil {
			d = s.difficulty
		}
	}
	next, err := e.NewSession(d)
	if err != nil {
		return s, err
	}
	return next, nil
}

func (e *Engine) uncover(s *Session, c Coord) (*Session, error) {
	if !s.difficulty.Contains(c) {
		return s, fmt.Errorf("uncover %v: %w", c, ErrOutOfBounds)
	}
	if s.state.Terminal() || s.Tile(c) != Covered {
		return s, nil
	}

	next := s.derive()
	next.ownBoard()

	switch {
	case s.state == New && s.mines.Has(c):
		m, err := e.generate(s.difficulty, &c)
		if err != nil {
			return s, err
		}
		Log.Debug("first click on a mine, layout replaced", slog.Any("coord", c))
		next.mines = m
		next.setTile(c, Uncovered)
		next.state = Playing
		next.checkWin()
	case s.mines.Has(c):
		next.explode(c)
	default:
		next.open(c)
		next.state = Playing
		next.checkWin()
	}
	return next, nil
}

func toggleFlag(s *Session, c Coord) (*Session, error) {
	if !s.difficulty.Contains(c) {
		return s, fmt.Errorf("flag %v: %w", c, ErrOutOfBounds)
	}
	if s.state.Terminal() {
		return s, nil
	}

	var t TileState
	switch s.Tile(c) {
	case Covered:
		t = Flagged
	case Flagged:
		t = Covered
	default:
		return s, nil
	}

	next := s.derive()
	next.ownBoard()
	next.setTile(c, t)
	return next, nil
}

func chord(s *Session, c Coord) (*Session, error) {
	if !s.difficulty.Contains(c) {
		return s, fmt.Errorf("chord %v: %w", c, ErrOutOfBounds)
	}
	if s.state != Playing || s.Tile(c) != Uncovered || s.mines.Has(c) {
		return s, nil
	}

	var flags int
	covered := make([]Coord, 0, 8)
	for _, n := range s.difficulty.neighbors(c) {
		switch s.Tile(n) {
		case Flagged:
			flags++
		case Covered:
			covered = append(covered, n)
		}
	}
	if flags != s.AdjacentMines(c) || len(covered) == 0 {
		return s, nil
	}

	next := s.derive()
	next.ownBoard()
	for _, n := range covered {
		if next.mines.Has(n) {
			next.explode(n)
			return next, nil
		}
		next.open(n)
	}
	next.checkWin()
	return next, nil
}

// tick only counts while the game is running; a tick racing the end of the
// game is dropped here rather than by the scheduler.
func tick(s *Session) *Session {
	if s.state != Playing {
		return s
	}
	next := s.derive()
	next.elapsed++
	return next
}
