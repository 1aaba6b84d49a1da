package processor

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/INDA23PlusPlus/redkar-chess/internal/board"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
	"github.com/INDA23PlusPlus/redkar-chess/internal/engine"
)

const (
	queueSize     = 100
	resultTimeout = 5 * time.Second
)

// MoveTask is a computer move request for one position
type MoveTask struct {
	GameID   string
	Board    board.Board
	Color    core.Color
	Response chan<- MoveResult
}

// MoveResult contains the outcome of a computer move search
type MoveResult struct {
	GameID string
	Move   core.Move
	Found  bool // false when the side has no legal move
	Error  error
}

// MoveQueue runs computer move searches on a fixed worker pool
type MoveQueue struct {
	tasks   chan MoveTask
	workers int
	seed    uint64
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
}

// NewMoveQueue creates a queue with specified worker count. Worker i draws
// from a PCG stream seeded with (seed, i).
func NewMoveQueue(workerCount int, seed uint64) *MoveQueue {
	if workerCount < 1 {
		workerCount = 2 // Default
	}

	ctx, cancel := context.WithCancel(context.Background())

	q := &MoveQueue{
		tasks:   make(chan MoveTask, queueSize),
		workers: workerCount,
		seed:    seed,
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	return q
}

// worker processes move tasks
func (q *MoveQueue) worker(id int) {
	defer q.wg.Done()

	// Each worker owns its generator; rand.Rand is not safe for concurrent use
	rng := rand.New(rand.NewPCG(q.seed, uint64(id)))

	for {
		select {
		case task := <-q.tasks:
			result := processTask(rng, task)

			// Send result if receiver still listening
			select {
			case task.Response <- result:
			case <-time.After(100 * time.Millisecond):
			}

		case <-q.ctx.Done():
			return
		}
	}
}

// processTask picks a random legal move, recovering from a malformed
// position instead of taking the worker down
func processTask(rng *rand.Rand, task MoveTask) (result MoveResult) {
	result.GameID = task.GameID

	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("move search failed: %v", r)
		}
	}()

	result.Move, result.Found = engine.RandomMove(&task.Board, task.Color, rng)
	return result
}

// Submit adds a task to the queue
func (q *MoveQueue) Submit(task MoveTask) error {
	select {
	case <-q.ctx.Done():
		return fmt.Errorf("queue is shutting down")
	default:
	}

	select {
	case q.tasks <- task:
		return nil
	default:
		return fmt.Errorf("queue is full")
	}
}

// SubmitAsync submits a task and hands the result to callback on another
// goroutine
func (q *MoveQueue) SubmitAsync(gameID string, b board.Board, color core.Color, callback func(MoveResult)) error {
	respChan := make(chan MoveResult, 1)

	task := MoveTask{
		GameID:   gameID,
		Board:    b,
		Color:    color,
		Response: respChan,
	}

	if err := q.Submit(task); err != nil {
		return err
	}

	go func() {
		select {
		case result := <-respChan:
			callback(result)
		case <-time.After(resultTimeout):
			callback(MoveResult{
				GameID: gameID,
				Error:  fmt.Errorf("move search timeout"),
			})
		}
	}()

	return nil
}

// Shutdown gracefully stops the queue
func (q *MoveQueue) Shutdown(timeout time.Duration) error {
	q.once.Do(q.cancel)

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout exceeded")
	}
}
