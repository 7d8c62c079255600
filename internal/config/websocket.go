package config

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader     websocket.Upgrader
	ReadLimit    int64
	WriteTimeout time.Duration
}

// NewWebSocket accepts any origin unless WS_ALLOWED_ORIGINS lists them
// comma-separated.
func NewWebSocket() (*WebSocket, error) {
	allowed := lookupList("WS_ALLOWED_ORIGINS")

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, a := range allowed {
				if a == origin {
					return true
				}
			}
			return false
		},
	}

	ws := &WebSocket{
		Upgrader:     upgrader,
		ReadLimit:    4096,
		WriteTimeout: 10 * time.Second,
	}

	return ws, nil
}
