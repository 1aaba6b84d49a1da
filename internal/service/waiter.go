package service

import (
	"sync"
	"time"
)

// WaitTimeout is the maximum time a client can wait for notifications
const WaitTimeout = 25 * time.Second

// WaitRegistry manages long-polling clients waiting for game state changes.
// Each waiter gets a channel that is closed exactly once: on a move count
// change, on game removal or on shutdown.
type WaitRegistry struct {
	mu       sync.Mutex
	waiters  map[string]map[chan struct{}]int // gameID → channel → last known move count
	shutdown bool
}

// NewWaitRegistry creates a new wait registry
func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		waiters: make(map[string]map[chan struct{}]int),
	}
}

// Register returns a channel closed once gameID moves past moveCount
func (w *WaitRegistry) Register(gameID string, moveCount int) <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	ch := make(chan struct{})
	if w.shutdown {
		close(ch)
		return ch
	}

	if w.waiters[gameID] == nil {
		w.waiters[gameID] = make(map[chan struct{}]int)
	}
	w.waiters[gameID][ch] = moveCount
	return ch
}

// Cancel drops a waiter that stopped listening
func (w *WaitRegistry) Cancel(gameID string, notify <-chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for ch := range w.waiters[gameID] {
		if ch == notify {
			delete(w.waiters[gameID], ch)
			close(ch)
		}
	}
	if len(w.waiters[gameID]) == 0 {
		delete(w.waiters, gameID)
	}
}

// NotifyGame wakes every waiter on gameID whose known move count differs
// from currentMoveCount
func (w *WaitRegistry) NotifyGame(gameID string, currentMoveCount int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for ch, known := range w.waiters[gameID] {
		if known != currentMoveCount {
			delete(w.waiters[gameID], ch)
			close(ch)
		}
	}
	if len(w.waiters[gameID]) == 0 {
		delete(w.waiters, gameID)
	}
}

// RemoveGame wakes all waiters of a game (called before game deletion)
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for ch := range w.waiters[gameID] {
		close(ch)
	}
	delete(w.waiters, gameID)
}

// Shutdown wakes every waiter; later registrations return closed channels
func (w *WaitRegistry) Shutdown() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.shutdown = true
	for gameID, chans := range w.waiters {
		for ch := range chans {
			close(ch)
		}
		delete(w.waiters, gameID)
	}
}

// Count returns the number of registered waiters for a game
func (w *WaitRegistry) Count(gameID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.waiters[gameID])
}
