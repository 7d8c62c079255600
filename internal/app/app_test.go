package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type tileJSON struct {
	State    string `json:"state"`
	Mine     bool   `json:"mine"`
	Adjacent int    `json:"adjacent"`
}

type sessionJSON struct {
	GameSessionId  string           `json:"game_session_id"`
	Difficulty     mines.Difficulty `json:"difficulty"`
	State          string           `json:"state"`
	Elapsed        int              `json:"elapsed"`
	RemainingMines int              `json:"remaining_mines"`
	Tiles          [][]tileJSON     `json:"tiles"`
	StartedAt      int64            `json:"started_at"`
	Error          string           `json:"error"`
}

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := New(logger, mines.NewEngine(rand.New(rand.NewPCG(1, 2))), opts)
	require.NoError(t, err)
	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string) (int, sessionJSON) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var body sessionJSON
	if res.StatusCode != http.StatusNoContent && res.StatusCode != http.StatusInternalServerError {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	}
	return res.StatusCode, body
}

func TestGameLifecycle(t *testing.T) {
	srv := newTestServer(t, Options{})

	status, created := do(t, http.MethodPost, srv.URL+"/game?difficulty=intermediate")
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "new", created.State)
	assert.Equal(t, mines.Intermediate, created.Difficulty)
	assert.Equal(t, 40, created.RemainingMines)
	require.Len(t, created.Tiles, 16)
	assert.Len(t, created.Tiles[0], 16)
	for _, row := range created.Tiles {
		for _, tile := range row {
			assert.Equal(t, tileJSON{State: "covered"}, tile)
		}
	}

	game := srv.URL + "/game/" + created.GameSessionId

	status, fetched := do(t, http.MethodGet, game)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.GameSessionId, fetched.GameSessionId)

	status, moved := do(t, http.MethodPost, game+"/move?move=open&row=4&col=4")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, []string{"playing", "won"}, moved.State)
	assert.Equal(t, "uncovered", moved.Tiles[4][4].State)
	assert.False(t, moved.Tiles[4][4].Mine)

	status, restarted := do(t, http.MethodPost, game+"/restart?difficulty=3:4:2")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "new", restarted.State)
	assert.Equal(t, mines.Difficulty{Rows: 3, Cols: 4, Mines: 2}, restarted.Difficulty)

	status, restarted = do(t, http.MethodPost, game+"/restart")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, mines.Difficulty{Rows: 3, Cols: 4, Mines: 2}, restarted.Difficulty)

	status, _ = do(t, http.MethodDelete, game)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, http.MethodGet, game)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFlagMove(t *testing.T) {
	srv := newTestServer(t, Options{})
	_, created := do(t, http.MethodPost, srv.URL+"/game")
	assert.Equal(t, mines.Beginner, created.Difficulty)
	game := srv.URL + "/game/" + created.GameSessionId

	status, flagged := do(t, http.MethodPost, game+"/move?move=flag&row=2&col=3")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "flagged", flagged.Tiles[2][3].State)
	assert.Equal(t, 9, flagged.RemainingMines)
	assert.Equal(t, "new", flagged.State)
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t, Options{})
	_, created := do(t, http.MethodPost, srv.URL+"/game")
	game := srv.URL + "/game/" + created.GameSessionId

	tests := []struct {
		name   string
		method string
		url    string
		status int
	}{
		{"unknown difficulty", http.MethodPost, srv.URL + "/game?difficulty=hard", http.StatusBadRequest},
		{"too many mines", http.MethodPost, srv.URL + "/game?difficulty=2:2:4", http.StatusBadRequest},
		{"board too large", http.MethodPost, srv.URL + "/game?difficulty=100000:100000:1", http.StatusBadRequest},
		{"trailing seed input", http.MethodPost, srv.URL + "/game?difficulty=8:8:10:junk", http.StatusBadRequest},
		{"bad id", http.MethodGet, srv.URL + "/game/42", http.StatusBadRequest},
		{"unknown id", http.MethodGet, srv.URL + "/game/8c0ae4c4-5a59-4c1e-9d0e-2b3c8b7f0a11", http.StatusNotFound},
		{"unknown move", http.MethodPost, game + "/move?move=dig&row=0&col=0", http.StatusBadRequest},
		{"missing col", http.MethodPost, game + "/move?move=open&row=0", http.StatusBadRequest},
		{"out of bounds", http.MethodPost, game + "/move?move=open&row=8&col=0", http.StatusBadRequest},
		{"negative", http.MethodPost, game + "/move?move=flag&row=0&col=-1", http.StatusBadRequest},
		{"bad restart", http.MethodPost, game + "/restart?difficulty=1:1:1", http.StatusBadRequest},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			status, body := do(t, test.method, test.url)
			assert.Equal(t, test.status, status)
			assert.NotEmpty(t, body.Error)
		})
	}

	// rejected moves leave the game untouched
	_, fetched := do(t, http.MethodGet, game)
	assert.Equal(t, "new", fetched.State)
}

func TestDifficulties(t *testing.T) {
	srv := newTestServer(t, Options{})

	res, err := http.Get(srv.URL + "/difficulties")
	require.NoError(t, err)
	defer res.Body.Close()

	var presets []struct {
		Name string `json:"name"`
		mines.Difficulty
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&presets))
	require.Len(t, presets, 3)
	assert.Equal(t, "beginner", presets[0].Name)
	assert.Equal(t, mines.Expert, presets[2].Difficulty)
}

func TestBasePath(t *testing.T) {
	srv := newTestServer(t, Options{BasePath: "/api/"})

	status, _ := do(t, http.MethodPost, srv.URL+"/api/game")
	assert.Equal(t, http.StatusCreated, status)
}

func TestAllowedOrigins(t *testing.T) {
	srv := newTestServer(t, Options{AllowedOrigins: []string{"https://a.example"}})

	origin := func(o string) string {
		t.Helper()
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/difficulties", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", o)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		return res.Header.Get("Access-Control-Allow-Origin")
	}

	assert.Equal(t, "https://a.example", origin("https://a.example"))
	assert.Empty(t, origin("https://b.example"))
}

func TestWebSocket(t *testing.T) {
	srv := newTestServer(t, Options{})
	_, created := do(t, http.MethodPost, srv.URL+"/game")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + created.GameSessionId + "/connect"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	exchange := func(msg string) sessionJSON {
		t.Helper()
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
		var reply sessionJSON
		require.NoError(t, conn.ReadJSON(&reply))
		return reply
	}

	reply := exchange("g")
	assert.Equal(t, "new", reply.State)

	reply = exchange("f 0 0\nf 0 1\nf 0 1")
	assert.Equal(t, "flagged", reply.Tiles[0][0].State)
	assert.Equal(t, "covered", reply.Tiles[0][1].State)
	assert.Equal(t, 9, reply.RemainingMines)

	reply = exchange("o 9 9")
	assert.Contains(t, reply.Error, "out of bounds")

	reply = exchange("z")
	assert.Contains(t, reply.Error, "unknown action")

	reply = exchange("n 100000:100000:1")
	assert.Contains(t, reply.Error, "invalid difficulty")

	reply = exchange("o 5 5")
	assert.Contains(t, []string{"playing", "won"}, reply.State)

	reply = exchange("n expert")
	assert.Equal(t, "new", reply.State)
	assert.Equal(t, mines.Expert, reply.Difficulty)

	require.NoError(t, conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	))
}

func TestWebSocketSessionDeleted(t *testing.T) {
	srv := newTestServer(t, Options{})
	_, created := do(t, http.MethodPost, srv.URL+"/game")

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + created.GameSessionId + "/connect"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	status, _ := do(t, http.MethodDelete, srv.URL+"/game/"+created.GameSessionId)
	require.Equal(t, http.StatusNoContent, status)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("g")))
	var reply sessionJSON
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Contains(t, reply.Error, "not found")

	// the server hangs up after a missing session
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

func TestWebSocketUnknownSession(t *testing.T) {
	srv := newTestServer(t, Options{})
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/8c0ae4c4-5a59-4c1e-9d0e-2b3c8b7f0a11/connect"

	_, res, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestStart(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := New(logger, mines.NewEngine(rand.New(rand.NewPCG(1, 2))), Options{
		Addr:         "127.0.0.1:0",
		TickInterval: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- a.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
