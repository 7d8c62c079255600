package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

// "g" fetches the session without acting on it. Every other line is parsed
// by [mines.ParseCommand].
const wsGet = "g"

func (g GameHandler) execute(id uuid.UUID, line string) (repository.GameSession, error) {
	if line == "" || line == wsGet {
		return g.sessions.FetchGameSession(id)
	}
	action, err := mines.ParseCommand(line)
	if err != nil {
		return repository.GameSession{}, err
	}
	return g.sessions.ApplyToGameSession(id, action)
}

/*
wsRunGameLoop answers every text frame with the session after all of its
lines were applied. A rejected line stops the frame and is answered with an
error object instead; the connection stays open.
*/
func (g GameHandler) wsRunGameLoop(conn *websocket.Conn, id uuid.UUID) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		var reply any
		for _, line := range strings.Split(strings.TrimSpace(string(buf)), "\n") {
			session, err := g.execute(id, strings.TrimSpace(line))
			if errors.Is(err, repository.ErrNotFound) {
				conn.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
				if werr := conn.WriteJSON(wrapError(err)); werr != nil {
					g.logger.Warn("unable to write json", slog.Any("error", werr))
				}
				return err
			}
			if err != nil {
				g.logger.Debug("rejected ws command", slog.String("line", line), slog.Any("error", err))
				reply = wrapError(err)
				break
			}
			reply = NewGameSessionDTO(session)
		}

		conn.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, ok := g.sessionId(w, r)
	if !ok {
		return
	}
	if _, err := g.sessions.FetchGameSession(id); err != nil {
		g.fail(w, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(g.ws.ReadLimit)

	g.logger.Debug("established WS connection", slog.String("id", id.String()))

	err = g.wsRunGameLoop(conn, id)
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		g.logger.Warn("error in ws loop", slog.Any("error", err))
	}
}
