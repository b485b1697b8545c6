package game

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/merev/ds-darts-engine/internal/checkout"
	"github.com/merev/ds-darts-engine/internal/match"
	"github.com/merev/ds-darts-engine/internal/stats"
)

// Service loads a session snapshot, runs one engine transition on it and
// saves the result. Calls for the same game are serialized.
type Service struct {
	store  Store
	clock  quartz.Clock
	logger *log.Logger

	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(store Store, clock quartz.Clock, logger *log.Logger) *Service {
	return &Service{
		store:  store,
		clock:  clock,
		logger: logger.WithPrefix("game"),
		locks:  make(map[string]*gameLock),
	}
}

// lock holds the per-game mutex until the returned func is called.
func (s *Service) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &gameLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// CreateGame stores a new session. With players it starts straight away,
// otherwise it waits in setup.
func (s *Service) CreateGame(ctx context.Context, req StartRequest) (GameView, error) {
	now := s.clock.Now()
	sess := match.NewSession()
	if len(req.Players) > 0 {
		started, err := sess.Start(req.config(), entrants(req.Players), now)
		if err != nil {
			return GameView{}, err
		}
		sess = started
	}

	rec, err := encode(uuid.NewString(), sess)
	if err != nil {
		return GameView{}, err
	}
	rec.CreatedAt, rec.UpdatedAt = now, now
	if err := s.store.Create(ctx, rec); err != nil {
		return GameView{}, fmt.Errorf("create game: %w", err)
	}

	s.logger.Info("game created", "id", rec.ID, "phase", rec.Phase, "players", len(req.Players))
	return view(rec, sess), nil
}

func (s *Service) GetGame(ctx context.Context, id string) (GameView, error) {
	rec, sess, err := s.load(ctx, id)
	if err != nil {
		return GameView{}, err
	}
	return view(rec, sess), nil
}

func (s *Service) StartGame(ctx context.Context, id string, req StartRequest) (GameView, error) {
	return s.update(ctx, id, "start", func(sess match.Session, now time.Time) (match.Session, error) {
		return sess.Start(req.config(), entrants(req.Players), now)
	})
}

func (s *Service) SubmitTurn(ctx context.Context, id string, req TurnRequest) (GameView, error) {
	throws, err := req.Visit()
	if err != nil {
		return GameView{}, err
	}
	return s.update(ctx, id, "turn", func(sess match.Session, _ time.Time) (match.Session, error) {
		next, err := sess.Submit(throws)
		if err != nil {
			return sess, err
		}
		if p, ok := sess.State.ActivePlayer(); ok {
			last := next.State.Players[sess.State.ActivePlayerIndex].History
			turn := last[len(last)-1]
			s.logger.Debug("turn applied", "id", id, "player", p.Name,
				"total", turn.Total, "after", turn.ScoreAfter, "bust", turn.WasBust, "win", turn.IsWinningRound)
		}
		return next, nil
	})
}

func (s *Service) Undo(ctx context.Context, id string) (GameView, error) {
	return s.update(ctx, id, "undo", func(sess match.Session, _ time.Time) (match.Session, error) {
		return sess.UndoTurn(), nil
	})
}

func (s *Service) NextLeg(ctx context.Context, id string) (GameView, error) {
	return s.update(ctx, id, "next-leg", func(sess match.Session, _ time.Time) (match.Session, error) {
		return sess.NextLeg()
	})
}

func (s *Service) Rematch(ctx context.Context, id string) (GameView, error) {
	return s.update(ctx, id, "rematch", func(sess match.Session, now time.Time) (match.Session, error) {
		return sess.Rematch(now)
	})
}

// NewGame throws the match away and returns the game to setup.
func (s *Service) NewGame(ctx context.Context, id string) (GameView, error) {
	return s.update(ctx, id, "new", func(sess match.Session, _ time.Time) (match.Session, error) {
		return sess.NewGame(), nil
	})
}

func (s *Service) DeleteGame(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("game deleted", "id", id)
	return nil
}

func (s *Service) ListGames(ctx context.Context, phase string) ([]GameSummary, error) {
	recs, err := s.store.List(ctx, phase)
	if err != nil {
		return nil, err
	}
	out := make([]GameSummary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, GameSummary{
			ID:         rec.ID,
			Phase:      rec.Phase,
			GameType:   rec.GameType,
			FinishMode: rec.FinishMode,
			TotalLegs:  rec.TotalLegs,
			UpdatedAt:  rec.UpdatedAt,
		})
	}
	return out, nil
}

func (s *Service) Stats(ctx context.Context, id string) (StatsView, error) {
	_, sess, err := s.load(ctx, id)
	if err != nil {
		return StatsView{}, err
	}
	return StatsView{
		ID:        id,
		Players:   stats.Compute(sess.State.Players),
		ShareText: stats.ShareText(sess.State, s.clock.Now()),
	}, nil
}

func (s *Service) update(ctx context.Context, id, op string, fn func(match.Session, time.Time) (match.Session, error)) (GameView, error) {
	unlock := s.lock(id)
	defer unlock()

	rec, sess, err := s.load(ctx, id)
	if err != nil {
		return GameView{}, err
	}

	now := s.clock.Now()
	next, err := fn(sess, now)
	if err != nil {
		s.logger.Warn("operation rejected", "id", id, "op", op, "phase", sess.State.Phase, "err", err)
		return GameView{}, err
	}

	updated, err := encode(id, next)
	if err != nil {
		return GameView{}, err
	}
	updated.CreatedAt, updated.UpdatedAt = rec.CreatedAt, now
	if err := s.store.Save(ctx, updated); err != nil {
		return GameView{}, fmt.Errorf("save game: %w", err)
	}

	s.logger.Info("game updated", "id", id, "op", op, "phase", next.State.Phase, "leg", next.State.CurrentLeg)
	return view(updated, next), nil
}

func (s *Service) load(ctx context.Context, id string) (Record, match.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Record{}, match.Session{}, ErrNotFound
	}
	rec, err := s.store.Load(ctx, id)
	if err != nil {
		return Record{}, match.Session{}, err
	}
	var sess match.Session
	if err := json.Unmarshal(rec.Snapshot, &sess); err != nil {
		return Record{}, match.Session{}, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	sess.State = sess.State.Restore(s.clock.Now())
	return rec, sess, nil
}

func encode(id string, sess match.Session) (Record, error) {
	snapshot, err := json.Marshal(sess)
	if err != nil {
		return Record{}, fmt.Errorf("encode snapshot %s: %w", id, err)
	}
	return Record{
		ID:         id,
		Phase:      string(sess.State.Phase),
		GameType:   int(sess.State.GameType),
		FinishMode: string(sess.State.FinishMode),
		TotalLegs:  sess.State.TotalLegs,
		Snapshot:   snapshot,
	}, nil
}

func view(rec Record, sess match.Session) GameView {
	v := GameView{
		ID:        rec.ID,
		State:     sess.State,
		CanUndo:   sess.CanUndo(),
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if sess.State.Phase != match.PhasePlaying {
		return v
	}
	p, ok := sess.State.ActivePlayer()
	if !ok {
		return v
	}
	if route, ok := checkout.Suggest(p.CurrentScore, checkout.Mode(sess.State.FinishMode)); ok {
		v.Checkout = &CheckoutHint{
			PlayerID:  p.ID,
			Remaining: p.CurrentScore,
			Route:     route.String(),
			Darts:     route,
		}
	}
	return v
}

func entrants(names []string) []match.Entrant {
	out := make([]match.Entrant, len(names))
	for i, n := range names {
		out[i] = match.Entrant{ID: uuid.NewString(), Name: n}
	}
	return out
}
