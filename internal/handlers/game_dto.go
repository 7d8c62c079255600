package handlers

import (
	"fmt"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type DifficultyDTO struct {
	Difficulty string `schema:"difficulty"`
}

// ParseDifficulty falls back to beginner when no difficulty is given.
func ParseDifficulty(src map[string][]string) (mines.Difficulty, error) {
	var dto DifficultyDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return mines.Difficulty{}, err
	}
	if dto.Difficulty == "" {
		return mines.Beginner, nil
	}
	return mines.ParseDifficulty(dto.Difficulty)
}

type MoveDTO struct {
	Move string `schema:"move,required"`
	Row  int    `schema:"row,required"`
	Col  int    `schema:"col,required"`
}

var ErrBadMove = fmt.Errorf("move must be one of 'open', 'flag', 'chord'")

func ParseMove(src map[string][]string) (mines.Action, error) {
	var dto MoveDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return nil, err
	}
	c := mines.Coord{Row: dto.Row, Col: dto.Col}
	switch strings.ToLower(dto.Move) {
	case "open":
		return mines.Uncover{Coord: c}, nil
	case "flag":
		return mines.ToggleFlag{Coord: c}, nil
	case "chord":
		return mines.Chord{Coord: c}, nil
	default:
		return nil, ErrBadMove
	}
}

type GameSessionDTO struct {
	GameSessionId string `json:"game_session_id"`
	mines.View
	StartedAt int64 `json:"started_at"`
}

func NewGameSessionDTO(s repository.GameSession) *GameSessionDTO {
	return &GameSessionDTO{
		GameSessionId: s.GameSessionId.String(),
		View:          mines.NewView(s.State),
		StartedAt:     s.StartedAt.UnixMilli(),
	}
}

type PresetDTO struct {
	Name string `json:"name"`
	mines.Difficulty
}
