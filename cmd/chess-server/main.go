// Package main runs the chess rules engine behind a REST API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/INDA23PlusPlus/redkar-chess/cmd/chess-server/cli"
	"github.com/INDA23PlusPlus/redkar-chess/internal/http"
	"github.com/INDA23PlusPlus/redkar-chess/internal/processor"
	"github.com/INDA23PlusPlus/redkar-chess/internal/service"
	"github.com/INDA23PlusPlus/redkar-chess/internal/storage"
)

const (
	gracefulShutdownTimeout = time.Second * 5
)

func main() {
	// Check for CLI database commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:], os.Stdout); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	var (
		apiHost     = flag.String("api-host", "localhost", "API server host")
		apiPort     = flag.Int("api-port", 8080, "API server port")
		dev         = flag.Bool("dev", false, "Development mode (relaxed rate limits, startup banner)")
		rateLimit   = flag.Int("rate-limit", 0, "Requests per second per client (0 for default, -1 disables)")
		accessLog   = flag.Bool("access-log", false, "Log every request")
		workers     = flag.Int("workers", 2, "Computer player workers")
		seed        = flag.Uint64("seed", 0, "Computer player seed (0 for random)")
		storagePath = flag.String("storage-path", "", "Path to SQLite database file (disables persistence if empty)")
		pidPath     = flag.String("pid", "", "Optional path to write PID file")
		pidLock     = flag.Bool("pid-lock", false, "Lock PID file to allow only one instance (requires -pid)")
	)
	flag.Parse()

	if *pidLock && *pidPath == "" {
		log.Fatal("Error: -pid-lock flag requires the -pid flag to be set")
	}

	if *pidPath != "" {
		pid, err := writePIDFile(*pidPath, *pidLock)
		if err != nil {
			log.Fatalf("Failed to manage PID file: %v", err)
		}
		defer pid.Remove()
		log.Printf("PID file created at: %s (lock: %v)", *pidPath, *pidLock)
	}

	// 1. Initialize Storage (optional)
	var store *storage.Store
	if *storagePath != "" {
		log.Printf("Initializing persistent storage at: %s", *storagePath)
		var err error
		store, err = storage.NewStore(*storagePath, *dev)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		if err := store.InitDB(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
	} else {
		log.Printf("Persistent storage disabled (use -storage-path to enable)")
	}

	// 2. Initialize the Service with optional storage; it owns the store
	svc, err := service.New(store)
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}

	// 3. Initialize the Processor with its computer player pool
	proc, err := processor.New(svc, processor.Config{Workers: *workers, Seed: *seed})
	if err != nil {
		svc.Close()
		log.Fatalf("Failed to initialize processor: %v", err)
	}

	// 4. Initialize the Fiber App/HTTP Handler
	app := http.NewFiberApp(proc, svc, http.Config{
		DevMode:   *dev,
		RateLimit: *rateLimit,
		AccessLog: *accessLog,
	})

	apiAddr := fmt.Sprintf("%s:%d", *apiHost, *apiPort)

	go func() {
		log.Printf("Chess API Server starting...")
		log.Printf("API Listening on: http://%s", apiAddr)
		log.Printf("API Version: v1")
		log.Printf("Computer players: %d worker(s)", *workers)
		if *storagePath != "" {
			log.Printf("Storage: Enabled (%s)", *storagePath)
		} else {
			log.Printf("Storage: Disabled")
		}
		log.Printf("API Endpoints: http://%s/api/v1/games", apiAddr)
		log.Printf("Health: http://%s/health", apiAddr)

		if err := app.Listen(apiAddr); err != nil {
			log.Printf("API server listen error: %v", err)
		}
	}()

	// Wait for an interrupt signal to gracefully shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer shutdownCancel()

	if err = app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Stop computer players before the service they write to
	if err = proc.Close(); err != nil {
		log.Printf("Processor close error: %v", err)
	}

	if store != nil {
		if err := store.Flush(shutdownCtx); err != nil {
			log.Printf("Warning: pending writes not flushed: %v", err)
		}
	}
	if err = svc.Close(); err != nil {
		log.Printf("Service shutdown error: %v", err)
	}

	log.Println("Server exited")
}
