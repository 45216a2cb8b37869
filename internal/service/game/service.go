package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/repository"
	"github.com/iamasit07/connect4/pkg/logger"
	"github.com/iamasit07/connect4/pkg/uid"
	"github.com/rs/zerolog"
)

const maxNameLength = 32

type Options struct {
	Width   int
	Height  int
	Palette []string
	// SessionTTL is how long a finished game is kept after its last update.
	// Unfinished games get twice as long.
	SessionTTL time.Duration
	Now        func() time.Time
}

type NewGameRequest struct {
	Player1 Player `json:"player1"`
	Player2 Player `json:"player2"`
}

type MoveOutcome struct {
	Session *Session
	Move    domain.MoveResult
	Cue     Cue
}

// Service owns every live game. Each game is addressed by its id and all
// operations on one game are serialised.
type Service struct {
	store   Store
	opts    Options
	palette map[string]bool
	locks   *gameLocks
	log     zerolog.Logger
}

func NewService(store Store, opts Options) (*Service, error) {
	if _, err := domain.NewGame(opts.Width, opts.Height); err != nil {
		return nil, fmt.Errorf("board %dx%d: %w", opts.Width, opts.Height, err)
	}

	palette := make(map[string]bool, len(opts.Palette))
	colors := make([]string, 0, len(opts.Palette))
	for _, c := range opts.Palette {
		c = normalizeColor(c)
		if c == "" || palette[c] {
			continue
		}
		palette[c] = true
		colors = append(colors, c)
	}
	if len(colors) < 2 {
		return nil, ErrBadPalette
	}
	opts.Palette = colors

	if opts.SessionTTL <= 0 {
		opts.SessionTTL = time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		store:   store,
		opts:    opts,
		palette: palette,
		locks:   newGameLocks(),
		log:     logger.Component("game"),
	}, nil
}

// Palette returns the colors players may pick, in display order.
func (s *Service) Palette() []string {
	return append([]string(nil), s.opts.Palette...)
}

func (s *Service) BoardSize() (width, height int) {
	return s.opts.Width, s.opts.Height
}

// Create starts a new game with player 1 to move.
func (s *Service) Create(ctx context.Context, req NewGameRequest) (*Session, error) {
	players, err := s.resolvePlayers(req.Player1, req.Player2)
	if err != nil {
		return nil, err
	}

	g, err := domain.NewGame(s.opts.Width, s.opts.Height)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now()
	session := &Session{
		ID:        uid.GenerateGameID(),
		Players:   players,
		Game:      g,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, session.record()); err != nil {
		return nil, fmt.Errorf("save game %s: %w", session.ID, err)
	}

	s.log.Info().
		Str("gameID", session.ID).
		Str("player1", players[0].Name).
		Str("player2", players[1].Name).
		Msg("Game created")
	return session, nil
}

// Get returns a copy of the game's current state.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.load(ctx, id)
}

// Move drops the active player's piece into column. Engine rejections
// (domain.ErrColumnFull, domain.ErrInvalidColumn, domain.ErrGameOver) are
// returned wrapped and leave the stored game untouched.
func (s *Service) Move(ctx context.Context, id string, column int) (*MoveOutcome, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	move, err := session.Game.DropPiece(column)
	if err != nil {
		return nil, fmt.Errorf("game %s: column %d: %w", id, column, err)
	}

	now := s.opts.Now()
	session.UpdatedAt = now
	if session.Game.IsFinished() {
		session.FinishedAt = &now
	}

	if err := s.store.Save(ctx, session.record()); err != nil {
		return nil, fmt.Errorf("save game %s: %w", id, err)
	}

	switch session.Game.Status() {
	case domain.StatusWon:
		s.log.Info().Str("gameID", id).Int("winner", int(session.Game.Winner())).Int("moves", session.Game.MoveCount()).Msg("Game won")
	case domain.StatusDraw:
		s.log.Info().Str("gameID", id).Int("moves", session.Game.MoveCount()).Msg("Game drawn")
	default:
		s.log.Debug().Str("gameID", id).Int("row", move.Row).Int("column", move.Column).Msg("Move accepted")
	}

	return &MoveOutcome{
		Session: session,
		Move:    move,
		Cue:     CueFor(move),
	}, nil
}

// Restart clears the board and hands the first move back to player 1.
// Players and their colors are kept.
func (s *Service) Restart(ctx context.Context, id string) (*Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	g, err := domain.NewGame(session.Game.Width(), session.Game.Height())
	if err != nil {
		return nil, err
	}
	session.Game = g
	session.UpdatedAt = s.opts.Now()
	session.FinishedAt = nil

	if err := s.store.Save(ctx, session.record()); err != nil {
		return nil, fmt.Errorf("save game %s: %w", id, err)
	}

	s.log.Info().Str("gameID", id).Msg("Game restarted")
	return session, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	s.log.Info().Str("gameID", id).Msg("Game removed")
	return nil
}

// Sweep removes games nobody has touched for a while and returns how many
// were removed.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list games: %w", err)
	}

	now := s.opts.Now()
	removed := 0
	for _, rec := range records {
		if !s.stale(rec, now) {
			continue
		}
		ok, err := s.removeIfStale(ctx, rec.ID, now)
		if err != nil {
			s.log.Error().Err(err).Str("gameID", rec.ID).Msg("Failed to remove stale game")
			continue
		}
		if ok {
			removed++
		}
	}

	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("Removed stale games")
	}
	return removed, nil
}

func (s *Service) stale(rec *Record, now time.Time) bool {
	limit := s.opts.SessionTTL
	if rec.FinishedAt == nil {
		limit *= 2
	}
	return now.Sub(rec.UpdatedAt) > limit
}

// removeIfStale re-reads the record under the game lock so a move that
// landed after List keeps the game alive.
func (s *Service) removeIfStale(ctx context.Context, id string, now time.Time) (bool, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	rec, err := s.store.Load(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !s.stale(rec, now) {
		return false, nil
	}

	if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	return true, nil
}

func (s *Service) load(ctx context.Context, id string) (*Session, error) {
	rec, err := s.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}

	session, err := sessionFromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("restore game %s: %w", id, err)
	}
	return session, nil
}

func (s *Service) resolvePlayers(p1, p2 Player) ([2]Player, error) {
	c1, c2 := normalizeColor(p1.Color), normalizeColor(p2.Color)
	for _, c := range []string{c1, c2} {
		if c != "" && !s.palette[c] {
			return [2]Player{}, fmt.Errorf("%w: %q", ErrUnknownColor, c)
		}
	}

	// An unpicked color takes the first palette entry the other player
	// has not already taken.
	if c1 == "" {
		c1 = s.firstColorExcept(c2)
	}
	if c2 == "" {
		c2 = s.firstColorExcept(c1)
	}
	if c1 == c2 {
		return [2]Player{}, ErrSameColor
	}

	n1, err := normalizeName(p1.Name, "Player 1")
	if err != nil {
		return [2]Player{}, err
	}
	n2, err := normalizeName(p2.Name, "Player 2")
	if err != nil {
		return [2]Player{}, err
	}

	return [2]Player{{Name: n1, Color: c1}, {Name: n2, Color: c2}}, nil
}

func (s *Service) firstColorExcept(taken string) string {
	for _, c := range s.opts.Palette {
		if c != taken {
			return c
		}
	}
	return ""
}

func normalizeColor(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

func normalizeName(name, fallback string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback, nil
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidName, maxNameLength)
	}
	return name, nil
}
