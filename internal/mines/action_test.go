package mines

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Action
		err  error
	}{
		{line: "o 1 2", want: Uncover{Coord{1, 2}}},
		{line: "  f 0 7 ", want: ToggleFlag{Coord{0, 7}}},
		{line: "c 3 4", want: Chord{Coord{3, 4}}},
		{line: "n", want: Restart{}},
		{line: "n expert", want: Restart{Difficulty: Expert}},
		{line: "n 5:6:7", want: Restart{Difficulty: Difficulty{Rows: 5, Cols: 6, Mines: 7}}},
		{line: "t", want: TimerTick{}},
		{line: "", err: ErrUnknownAction},
		{line: "x 1 2", err: ErrUnknownAction},
		{line: "n 2:2:4", err: ErrInvalidDifficulty},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			got, err := ParseCommand(test.line)
			if test.err != nil {
				assert.ErrorIs(t, err, test.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseCommandBadArguments(t *testing.T) {
	for _, line := range []string{"o 1", "o a 2", "f 1 b", "c 1 2 3", "t 1", "n a b"} {
		_, err := ParseCommand(line)
		assert.Error(t, err, line)
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("Intermediate")
	require.NoError(t, err)
	assert.Equal(t, Intermediate, d)

	d, err = ParseDifficulty(Expert.Seed())
	require.NoError(t, err)
	assert.Equal(t, Expert, d)
	assert.Equal(t, "expert", d.String())
	assert.Equal(t, "9:9:10", Difficulty{Rows: 9, Cols: 9, Mines: 10}.String())

	for _, s := range []string{
		"hard", "9:9", "0:9:1", "3:3:9",
		"8:8:10:junk", "8 8 10", "8:8:x", "100000:100000:1", "101:8:10",
	} {
		_, err := ParseDifficulty(s)
		assert.ErrorIs(t, err, ErrInvalidDifficulty, s)
	}
}

func TestNewView(t *testing.T) {
	e := NewEngine(testRand())
	d := Difficulty{Rows: 2, Cols: 3, Mines: 1}
	s := mustSession(t, d, Coord{0, 0})
	s = mustApply(t, e, s, Uncover{Coord{1, 1}}, ToggleFlag{Coord{0, 0}})

	v := NewView(s)
	assert.Equal(t, Playing, v.State)
	assert.Equal(t, 0, v.RemainingMines)
	assert.Equal(t, TileView{State: Flagged}, v.Tiles[0][0], "mine hidden under flag")
	assert.Equal(t, TileView{State: Uncovered, Adjacent: 1}, v.Tiles[1][1])
	assert.Equal(t, TileView{State: Covered}, v.Tiles[1][2])

	s = mustApply(t, e, s, ToggleFlag{Coord{0, 0}}, Uncover{Coord{0, 0}})
	v = NewView(s)
	assert.Equal(t, Lost, v.State)
	assert.Equal(t, TileView{State: Exploded, Mine: true}, v.Tiles[0][0])

	b, err := json.Marshal(v.Tiles[0][0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"exploded","mine":true}`, string(b))
}

func TestSessionString(t *testing.T) {
	e := NewEngine(testRand())
	s := mustSession(t, Difficulty{Rows: 2, Cols: 3, Mines: 1}, Coord{0, 0})
	s = mustApply(t, e, s, Uncover{Coord{1, 2}}, ToggleFlag{Coord{0, 0}})
	assert.Equal(t, "F 1 0 \n. 1 0 \n", s.String())
}
