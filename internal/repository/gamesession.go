package repository

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNotFound = errors.New("game session not found")

type GameSession struct {
	GameSessionId uuid.UUID
	State         *mines.Session
	StartedAt     time.Time
	UpdatedAt     time.Time
}

type entry struct {
	mu      sync.Mutex
	session GameSession
}

// Sessions keeps live games in memory. Actions on one session are applied
// one at a time; different sessions proceed independently.
type Sessions struct {
	logger *slog.Logger
	engine *mines.Engine
	now    func() time.Time

	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
}

func New(logger *slog.Logger, engine *mines.Engine) *Sessions {
	return &Sessions{
		logger:  logger,
		engine:  engine,
		now:     time.Now,
		entries: make(map[uuid.UUID]*entry),
	}
}

func (s *Sessions) CreateGameSession(d mines.Difficulty) (GameSession, error) {
	state, err := s.engine.NewSession(d)
	if err != nil {
		return GameSession{}, err
	}
	now := s.now().UTC()
	session := GameSession{
		GameSessionId: uuid.New(),
		State:         state,
		StartedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	s.entries[session.GameSessionId] = &entry{session: session}
	s.mu.Unlock()

	s.logger.Debug("created game session",
		slog.String("id", session.GameSessionId.String()),
		slog.String("difficulty", d.String()),
	)
	return session, nil
}

func (s *Sessions) lookup(id uuid.UUID) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *Sessions) FetchGameSession(id uuid.UUID) (GameSession, error) {
	e, err := s.lookup(id)
	if err != nil {
		return GameSession{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session, nil
}

// ApplyToGameSession runs a through the engine and stores the result. When
// the engine rejects the action the stored session is returned unchanged
// along with the error.
func (s *Sessions) ApplyToGameSession(id uuid.UUID, a mines.Action) (GameSession, error) {
	e, err := s.lookup(id)
	if err != nil {
		return GameSession{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := s.engine.Apply(e.session.State, a)
	if err != nil {
		return e.session, err
	}

	if _, ok := a.(mines.Restart); ok {
		e.session.StartedAt = s.now().UTC()
	}
	if _, ok := a.(mines.TimerTick); !ok {
		e.session.UpdatedAt = s.now().UTC()
	}
	if prev := e.session.State.State(); prev != next.State() {
		s.logger.Debug("game state changed",
			slog.String("id", id.String()),
			slog.String("from", prev.String()),
			slog.String("to", next.State().String()),
		)
	}
	e.session.State = next
	return e.session, nil
}

func (s *Sessions) DeleteGameSession(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Sessions) snapshot() map[uuid.UUID]*entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make(map[uuid.UUID]*entry, len(s.entries))
	for id, e := range s.entries {
		entries[id] = e
	}
	return entries
}

// Tick advances the timer of every game in progress.
func (s *Sessions) Tick() {
	for id, e := range s.snapshot() {
		e.mu.Lock()
		if e.session.State.State() == mines.Playing {
			next, err := s.engine.Apply(e.session.State, mines.TimerTick{})
			if err != nil {
				s.logger.Error("unable to tick session",
					slog.String("id", id.String()), slog.Any("error", err))
			} else {
				e.session.State = next
			}
		}
		e.mu.Unlock()
	}
}

// Evict drops sessions that have seen no player action for longer than ttl.
func (s *Sessions) Evict(ttl time.Duration) int {
	deadline := s.now().UTC().Add(-ttl)
	evicted := 0
	for id, e := range s.snapshot() {
		e.mu.Lock()
		stale := e.session.UpdatedAt.Before(deadline)
		e.mu.Unlock()
		if stale && s.DeleteGameSession(id) == nil {
			evicted++
		}
	}
	if evicted > 0 {
		s.logger.Info("evicted idle game sessions", slog.Int("count", evicted))
	}
	return evicted
}

// Run ticks running games every interval until ctx is done. A positive ttl
// also evicts idle sessions on each round.
func (s *Sessions) Run(ctx context.Context, interval, ttl time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Tick()
			if ttl > 0 {
				s.Evict(ttl)
			}
		}
	}
}
