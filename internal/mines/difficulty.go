package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// Difficulty is the board configuration a session is created with.
type Difficulty struct {
	Rows  int `json:"rows"`
	Cols  int `json:"cols"`
	Mines int `json:"mines"`
}

var (
	Beginner     = Difficulty{Rows: 8, Cols: 8, Mines: 10}
	Intermediate = Difficulty{Rows: 16, Cols: 16, Mines: 40}
	Expert       = Difficulty{Rows: 16, Cols: 30, Mines: 99}
)

// Presets maps preset names to their configuration.
var Presets = map[string]Difficulty{
	"beginner":     Beginner,
	"intermediate": Intermediate,
	"expert":       Expert,
}

// MaxSide bounds rows and cols so a single request cannot allocate an
// arbitrarily large board.
const MaxSide = 100

func (d Difficulty) Size() int {
	return d.Rows * d.Cols
}

func (d Difficulty) IsZero() bool {
	return d == Difficulty{}
}

// Validate reports [ErrInvalidDifficulty] for boards larger than [MaxSide]
// or that cannot hold the requested mines with at least one safe tile.
func (d Difficulty) Validate() error {
	if d.Rows < 1 || d.Cols < 1 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d",
			ErrInvalidDifficulty, d.Rows, d.Cols)
	}
	if d.Rows > MaxSide || d.Cols > MaxSide {
		return fmt.Errorf("%w: board must be at most %dx%d, got %dx%d",
			ErrInvalidDifficulty, MaxSide, MaxSide, d.Rows, d.Cols)
	}
	if d.Mines < 1 {
		return fmt.Errorf("%w: mine count must be positive, got %d",
			ErrInvalidDifficulty, d.Mines)
	}
	if d.Mines >= d.Size() {
		return fmt.Errorf("%w: %d mines do not fit a %dx%d board",
			ErrInvalidDifficulty, d.Mines, d.Rows, d.Cols)
	}
	return nil
}

func (d Difficulty) Contains(c Coord) bool {
	return 0 <= c.Row && c.Row < d.Rows && 0 <= c.Col && c.Col < d.Cols
}

func (d Difficulty) index(c Coord) int {
	return c.Row*d.Cols + c.Col
}

func (d Difficulty) coord(i int) Coord {
	return Coord{Row: i / d.Cols, Col: i % d.Cols}
}

func (d Difficulty) Seed() string {
	return fmt.Sprintf("%d:%d:%d", d.Rows, d.Cols, d.Mines)
}

func (d Difficulty) String() string {
	for name, p := range Presets {
		if p == d {
			return name
		}
	}
	return d.Seed()
}

// ParseSeed reads a rows:cols:mines seed. It does not validate the result.
func ParseSeed(seed string) (Difficulty, error) {
	parts := strings.Split(seed, ":")
	if len(parts) != 3 {
		return Difficulty{}, fmt.Errorf(
			`%w: invalid seed %q: want rows:cols:mines`, ErrInvalidDifficulty, seed)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Difficulty{}, fmt.Errorf(
				`%w: invalid seed %q: %v`, ErrInvalidDifficulty, seed, err)
		}
		nums[i] = n
	}
	return Difficulty{Rows: nums[0], Cols: nums[1], Mines: nums[2]}, nil
}

// ParseDifficulty accepts a preset name or a rows:cols:mines seed and
// validates the result.
func ParseDifficulty(s string) (Difficulty, error) {
	if d, ok := Presets[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	d, err := ParseSeed(s)
	if err != nil {
		return Difficulty{}, err
	}
	if err := d.Validate(); err != nil {
		return Difficulty{}, err
	}
	return d, nil
}
