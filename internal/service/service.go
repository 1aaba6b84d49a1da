package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/INDA23PlusPlus/redkar-chess/internal/board"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
	"github.com/INDA23PlusPlus/redkar-chess/internal/game"
	"github.com/INDA23PlusPlus/redkar-chess/internal/storage"
)

// entry serialises every operation on one game
type entry struct {
	mu      sync.Mutex
	game    *game.Game
	pending bool // computer move in flight
}

// Service is a pure state manager for chess games with optional persistence
type Service struct {
	games  map[string]*entry
	mu     sync.RWMutex
	store  *storage.Store // nil if persistence disabled
	waiter *WaitRegistry
}

// New creates a new service instance with optional storage
func New(store *storage.Store) (*Service, error) {
	return &Service{
		games:  make(map[string]*entry),
		store:  store,
		waiter: NewWaitRegistry(),
	}, nil
}

// CreateGame registers a new game. An empty fen starts from the standard
// opening layout.
func (s *Service) CreateGame(id string, whitePlayer, blackPlayer *core.Player, fen string) error {
	var g *game.Game
	if fen == "" {
		g = game.New(whitePlayer, blackPlayer)
	} else {
		var err error
		if g, err = game.NewFromFEN(fen, whitePlayer, blackPlayer); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[id]; exists {
		return fmt.Errorf("game %s: %w", id, core.ErrGameExists)
	}
	s.games[id] = &entry{game: g}

	if s.store != nil {
		now := time.Now().UTC()
		if err := s.store.RecordNewGame(storage.GameRecord{
			GameID:        id,
			InitialFEN:    g.InitialFEN(),
			WhitePlayerID: playerID(whitePlayer),
			WhiteType:     playerType(whitePlayer),
			BlackPlayerID: playerID(blackPlayer),
			BlackType:     playerType(blackPlayer),
			StartTimeUTC:  now,
		}); err != nil {
			log.Printf("Game %s: %v", id, err)
		}
		if g.Finished() {
			if err := s.store.RecordOutcome(id, g.Outcome().String(), g.Termination().String(), now); err != nil {
				log.Printf("Game %s: %v", id, err)
			}
		}
	}

	return nil
}

// GenerateGameID creates a new unique game ID
func (s *Service) GenerateGameID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

func (s *Service) lookup(gameID string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}
	return e, nil
}

// View runs fn with exclusive access to the game. fn must not retain g.
func (s *Service) View(gameID string, fn func(g *game.Game, pending bool)) error {
	e, err := s.lookup(gameID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.game, e.pending)
	return nil
}

// MakeMove plays a human move
func (s *Service) MakeMove(gameID string, m core.Move) (core.Outcome, error) {
	e, err := s.lookup(gameID)
	if err != nil {
		return core.OutcomeNone, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.game.Finished() {
		return core.OutcomeNone, core.ErrGameOver
	}
	if e.pending {
		return core.OutcomeNone, core.ErrMoveInProgress
	}
	if p := e.game.NextPlayer(); p != nil && p.Type == core.PlayerComputer {
		return core.OutcomeNone, core.ErrNotHumanTurn
	}

	return s.applyLocked(gameID, e, m)
}

// BeginComputerMove marks the game pending and returns the position the
// computer player has to answer
func (s *Service) BeginComputerMove(gameID string) (board.Board, core.Color, error) {
	e, err := s.lookup(gameID)
	if err != nil {
		return board.Board{}, 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.game.Finished():
		return board.Board{}, 0, core.ErrGameOver
	case e.pending:
		return board.Board{}, 0, core.ErrMoveInProgress
	}
	if p := e.game.NextPlayer(); p == nil || p.Type != core.PlayerComputer {
		return board.Board{}, 0, core.ErrNotComputerTurn
	}

	e.pending = true
	return e.game.Board(), e.game.Turn(), nil
}

// CompleteComputerMove applies the move computed for a pending game
func (s *Service) CompleteComputerMove(gameID string, m core.Move) (core.Outcome, error) {
	e, err := s.lookup(gameID)
	if err != nil {
		return core.OutcomeNone, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.pending {
		return core.OutcomeNone, fmt.Errorf("game %s has no computer move pending", gameID)
	}
	e.pending = false
	return s.applyLocked(gameID, e, m)
}

// AbortComputerMove clears the pending flag after a failed computation
func (s *Service) AbortComputerMove(gameID string) {
	e, err := s.lookup(gameID)
	if err != nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = false
	s.waiter.NotifyGame(gameID, e.game.MoveCount())
}

// applyLocked runs DoMove and persists the result. Caller holds e.mu.
func (s *Service) applyLocked(gameID string, e *entry, m core.Move) (core.Outcome, error) {
	outcome, err := e.game.DoMove(m)
	if err != nil {
		return core.OutcomeNone, err
	}

	result := e.game.LastResult()
	s.waiter.NotifyGame(gameID, e.game.MoveCount())

	if s.store != nil {
		now := time.Now().UTC()
		if err := s.store.RecordMove(storage.MoveRecord{
			GameID:       gameID,
			MoveNumber:   e.game.MoveCount(),
			MoveUCI:      m.String(),
			MoveClass:    result.Class.String(),
			FENAfterMove: e.game.CurrentFEN(),
			PlayerColor:  result.Player.String(),
			MoveTimeUTC:  now,
		}); err != nil {
			log.Printf("Game %s: %v", gameID, err)
		}
		if e.game.Finished() {
			if err := s.store.RecordOutcome(gameID, outcome.String(), e.game.Termination().String(), now); err != nil {
				log.Printf("Game %s: %v", gameID, err)
			}
		}
	}

	if e.game.Finished() {
		log.Printf("Game %s finished: %s", gameID, e.game.Announcement())
	}
	return outcome, nil
}

// WaitForChange blocks until the game's move count differs from
// knownMoves, the game ends, the wait times out or ctx is done
func (s *Service) WaitForChange(ctx context.Context, gameID string, knownMoves int) error {
	e, err := s.lookup(gameID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.game.MoveCount() != knownMoves || e.game.Finished() {
		e.mu.Unlock()
		return nil
	}
	// registered under the game lock so no notification is missed
	notify := s.waiter.Register(gameID, knownMoves)
	e.mu.Unlock()

	timer := time.NewTimer(WaitTimeout)
	defer timer.Stop()

	select {
	case <-notify:
		return nil
	case <-timer.C:
		s.waiter.Cancel(gameID, notify)
		return nil
	case <-ctx.Done():
		s.waiter.Cancel(gameID, notify)
		return ctx.Err()
	}
}

// DeleteGame removes a game from memory. A game with a computer move in
// flight cannot be deleted.
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrGameNotFound, gameID)
	}

	// lock order is s.mu then e.mu
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending {
		return core.ErrMoveInProgress
	}

	s.waiter.RemoveGame(gameID)
	delete(s.games, gameID)
	return nil
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close cleans up resources
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.waiter.Shutdown()
	s.games = make(map[string]*entry)

	if s.store != nil {
		return s.store.Close()
	}

	return nil
}

func playerID(p *core.Player) string {
	if p == nil {
		return ""
	}
	return p.ID
}

func playerType(p *core.Player) int {
	if p == nil {
		return int(core.PlayerHuman)
	}
	return int(p.Type)
}
