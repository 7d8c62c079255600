package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type Options struct {
	Addr         string
	BasePath     string
	TickInterval time.Duration
	SessionTTL   time.Duration

	// AllowedOrigins for CORS; empty allows every origin.
	AllowedOrigins []string
}

type App struct {
	logger   *slog.Logger
	router   *http.ServeMux
	sessions *repository.Sessions
	ws       *config.WebSocket
	opts     Options
}

func New(logger *slog.Logger, engine *mines.Engine, opts Options) (*App, error) {
	ws, err := config.NewWebSocket()
	if err != nil {
		return nil, err
	}

	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}

	app := &App{
		logger:   logger,
		router:   http.NewServeMux(),
		sessions: repository.New(logger, engine),
		ws:       ws,
		opts:     opts,
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	var h http.Handler = a.router
	if base := strings.TrimSuffix(a.opts.BasePath, "/"); base != "" {
		h = http.StripPrefix(base, h)
	}
	return middleware.Wrap(
		h,
		middleware.Recover(a.logger),
		middleware.Cors(a.opts.AllowedOrigins...),
		middleware.Logging(a.logger),
	)
}

// Start serves until ctx is cancelled, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.opts.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.sessions.Run(gCtx, a.opts.TickInterval, a.opts.SessionTTL)
	})

	a.logger.Info("server listening",
		slog.String("addr", a.opts.Addr),
		slog.String("base path", a.opts.BasePath),
	)

	return g.Wait()
}
