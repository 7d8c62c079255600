package mines

import (
	"log/slog"
	"math/rand/v2"
)

/*
GenerateMines draws uniformly random coordinates until d.Mines distinct
ones are collected. When avoid is set and the drawn layout covers it, the
whole layout is thrown away and drawn again.
*/
func GenerateMines(d Difficulty, avoid *Coord, r *rand.Rand) (MineSet, error) {
	if err := d.Validate(); err != nil {
		return MineSet{}, err
	}
	if avoid != nil && !d.Contains(*avoid) {
		return MineSet{}, ErrOutOfBounds
	}

	attempt := 0
	for {
		attempt++

		grid := make([]bool, d.Size())
		placed := 0
		for placed < d.Mines {
			i := d.index(Coord{Row: r.IntN(d.Rows), Col: r.IntN(d.Cols)})
			if !grid[i] {
				grid[i] = true
				placed++
			}
		}

		if avoid != nil && grid[d.index(*avoid)] {
			continue
		}

		if attempt > 1 {
			Log.Debug("regenerated mine layout",
				slog.String("difficulty", d.String()),
				slog.Any("avoid", avoid),
				slog.Int("attempts", attempt),
			)
		}
		return MineSet{grid: grid, cols: d.Cols, count: placed}, nil
	}
}
