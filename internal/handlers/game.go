package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type GameHandler struct {
	logger   *slog.Logger
	sessions *repository.Sessions
	ws       *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	sessions *repository.Sessions,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		logger:   logger,
		sessions: sessions,
		ws:       ws,
	}
}

func (g GameHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		sendErrorOrLog(w, g.logger, http.StatusNotFound, err)
	case errors.Is(err, mines.ErrOutOfBounds),
		errors.Is(err, mines.ErrInvalidDifficulty),
		errors.Is(err, mines.ErrUnknownAction):
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
	default:
		g.logger.Error("unable to handle game request", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (g GameHandler) sessionId(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, errors.New("invalid game session id"))
		return uuid.Nil, false
	}
	return id, true
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	d, err := ParseDifficulty(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	session, err := g.sessions.CreateGameSession(d)
	if err != nil {
		g.fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, ok := g.sessionId(w, r)
	if !ok {
		return
	}

	session, err := g.sessions.FetchGameSession(id)
	if err != nil {
		g.fail(w, err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session))
}

func (g GameHandler) apply(w http.ResponseWriter, id uuid.UUID, a mines.Action) {
	session, err := g.sessions.ApplyToGameSession(id, a)
	if err != nil {
		g.fail(w, err)
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	id, ok := g.sessionId(w, r)
	if !ok {
		return
	}

	move, err := ParseMove(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	g.apply(w, id, move)
}

func (g GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	id, ok := g.sessionId(w, r)
	if !ok {
		return
	}

	var restart mines.Restart
	if r.URL.Query().Has("difficulty") {
		d, err := ParseDifficulty(r.URL.Query())
		if err != nil {
			sendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
			return
		}
		restart.Difficulty = d
	}

	g.apply(w, id, restart)
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := g.sessionId(w, r)
	if !ok {
		return
	}

	if err := g.sessions.DeleteGameSession(id); err != nil {
		g.fail(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (g GameHandler) Difficulties(w http.ResponseWriter, r *http.Request) {
	presets := make([]PresetDTO, 0, len(mines.Presets))
	for name, d := range mines.Presets {
		presets = append(presets, PresetDTO{Name: name, Difficulty: d})
	}
	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Size() < presets[j].Size()
	})
	sendJSONOrLog(w, g.logger, presets)
}
