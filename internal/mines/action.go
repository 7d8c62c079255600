package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// Action is a request to the [Engine]. The set of actions is closed.
type Action interface {
	action()
}

// Restart replaces the session with a fresh one. The zero Difficulty keeps
// the current session's difficulty.
type Restart struct {
	Difficulty Difficulty
}

type Uncover struct {
	Coord
}

type ToggleFlag struct {
	Coord
}

// Chord uncovers the covered neighbours of an uncovered tile once as many
// flags surround it as it has adjacent mines.
type Chord struct {
	Coord
}

type TimerTick struct{}

func (Restart) action()    {}
func (Uncover) action()    {}
func (ToggleFlag) action() {}
func (Chord) action()      {}
func (TimerTick) action()  {}

func (a Restart) String() string {
	if a.Difficulty.IsZero() {
		return "restart"
	}
	return "restart " + a.Difficulty.String()
}

func (a Uncover) String() string    { return "uncover " + a.Coord.String() }
func (a ToggleFlag) String() string { return "flag " + a.Coord.String() }
func (a Chord) String() string      { return "chord " + a.Coord.String() }
func (TimerTick) String() string    { return "tick" }

// Maps known commands to number of arguments
var commandNargs = map[string][]int{
	"o": {2},
	"f": {2},
	"c": {2},
	"n": {0, 1},
	"t": {0},
}

func parseRowCol(args []string) (c Coord, err error) {
	if c.Row, err = strconv.Atoi(args[0]); err != nil {
		return c, fmt.Errorf("row must be an int")
	}
	if c.Col, err = strconv.Atoi(args[1]); err != nil {
		return c, fmt.Errorf("col must be an int")
	}
	return c, nil
}

/*
ParseCommand reads one line of the text command language:

	o ROW COL    uncover
	f ROW COL    toggle flag
	c ROW COL    chord
	n [LEVEL]    restart, LEVEL is a preset name or rows:cols:mines
	t            timer tick

Unknown commands wrap [ErrUnknownAction].
*/
func ParseCommand(line string) (Action, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrUnknownAction)
	}
	cmd, args := parts[0], parts[1:]

	nargs, ok := commandNargs[cmd]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, cmd)
	}
	valid := false
	for _, n := range nargs {
		valid = valid || n == len(args)
	}
	if !valid {
		return nil, fmt.Errorf("invalid number of arguments for %q", cmd)
	}

	switch cmd {
	case "o", "f", "c":
		c, err := parseRowCol(args)
		if err != nil {
			return nil, err
		}
		switch cmd {
		case "o":
			return Uncover{c}, nil
		case "f":
			return ToggleFlag{c}, nil
		default:
			return Chord{c}, nil
		}
	case "n":
		if len(args) == 0 {
			return Restart{}, nil
		}
		d, err := ParseDifficulty(args[0])
		if err != nil {
			return nil, err
		}
		return Restart{Difficulty: d}, nil
	default:
		return TimerTick{}, nil
	}
}
