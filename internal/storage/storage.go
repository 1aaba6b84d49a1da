package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	writeQueueSize  = 1000
	shutdownTimeout = 2 * time.Second
)

var (
	ErrQueueFull   = errors.New("storage write queue full")
	ErrStoreClosed = errors.New("storage closed")
)

// writeOp is one queued transaction. done, when set, is closed once the
// writer has handled the op, whether or not it ran.
type writeOp struct {
	fn   func(*sql.Tx) error
	done chan struct{}
}

// Store handles SQLite database operations with async writes
type Store struct {
	db           *sql.DB
	path         string
	writeChan    chan writeOp
	healthStatus atomic.Bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	closeOnce    sync.Once
}

// NewStore creates a new storage instance with async writer
func NewStore(dataSourceName string, devMode bool) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode in development for better concurrency
	if devMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		db:        db,
		path:      dataSourceName,
		writeChan: make(chan writeOp, writeQueueSize),
		ctx:       ctx,
		cancel:    cancel,
	}

	s.healthStatus.Store(true)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

// writerLoop processes async write operations
func (s *Store) writerLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			// Drain remaining writes with timeout
			deadline := time.After(shutdownTimeout)
			for {
				select {
				case op := <-s.writeChan:
					s.handle(op)
				case <-deadline:
					return
				default:
					return
				}
			}

		case op := <-s.writeChan:
			s.handle(op)
		}
	}
}

func (s *Store) handle(op writeOp) {
	// Skip if already degraded
	if op.fn != nil && s.healthStatus.Load() {
		s.executeWrite(op.fn)
	}
	if op.done != nil {
		close(op.done)
	}
}

// executeWrite runs a transactional write operation
func (s *Store) executeWrite(fn func(*sql.Tx) error) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("Storage degraded: failed to begin transaction: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		log.Printf("Storage degraded: write operation failed: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Storage degraded: failed to commit: %v", err)
		s.healthStatus.Store(false)
		return
	}
}

// enqueue hands fn to the writer without blocking. Writes are dropped
// silently while the store is degraded; a full queue or a closed store
// reports the dropped write.
func (s *Store) enqueue(what string, fn func(*sql.Tx) error) error {
	if s.ctx.Err() != nil {
		return fmt.Errorf("%w: dropping %s", ErrStoreClosed, what)
	}
	if !s.healthStatus.Load() {
		return nil
	}

	select {
	case s.writeChan <- writeOp{fn: fn}:
		return nil
	default:
		return fmt.Errorf("%w: dropping %s", ErrQueueFull, what)
	}
}

// Flush blocks until every write queued before the call has been handled
func (s *Store) Flush(ctx context.Context) error {
	done := make(chan struct{})

	select {
	case s.writeChan <- writeOp{done: done}:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return ErrStoreClosed
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsHealthy returns the current health status
func (s *Store) IsHealthy() bool {
	return s.healthStatus.Load()
}

// Close gracefully closes the database connection
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(shutdownTimeout):
			log.Printf("Warning: storage writer shutdown timeout, some writes may be lost")
		}

		if s.db != nil {
			err = s.db.Close()
		}
	})
	return err
}

// InitDB creates the database schema
func (s *Store) InitDB() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return tx.Commit()
}

// DeleteDB closes the store and removes the database file
func (s *Store) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete database file: %w", err)
	}

	return nil
}
