package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// pidFile holds the server's PID file open, locked when requested
type pidFile struct {
	path   string
	file   *os.File
	locked bool
}

// writePIDFile records the current PID at path. With lock set, a second
// server pointed at the same file refuses to start.
func writePIDFile(path string, lock bool) (*pidFile, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if errors.Is(err, os.ErrExist) {
		if lock {
			if err := checkRunning(path); err != nil {
				return nil, err
			}
		}
		file, err = os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0644)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open PID file: %w", err)
	}

	p := &pidFile{path: path, file: file}
	if lock {
		if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
			file.Close()
			if errors.Is(err, syscall.EWOULDBLOCK) {
				return nil, fmt.Errorf("another chess server holds %s", path)
			}
			return nil, fmt.Errorf("lock failed: %w", err)
		}
		p.locked = true
	}

	if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		p.Remove()
		return nil, fmt.Errorf("cannot write PID: %w", err)
	}
	if err := file.Sync(); err != nil {
		p.Remove()
		return nil, fmt.Errorf("cannot sync PID file: %w", err)
	}
	return p, nil
}

// Remove unlocks, closes and deletes the PID file
func (p *pidFile) Remove() {
	if p.locked {
		syscall.Flock(int(p.file.Fd()), syscall.LOCK_UN)
	}
	p.file.Close()
	os.Remove(p.path)
}

// checkRunning refuses an existing PID file whose process is still alive.
// A file left by a dead process is reported and reused.
func checkRunning(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read existing PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("corrupted PID file %s (contains: %q)", path, data)
	}

	// FindProcess never fails on Unix; signal 0 only checks existence
	proc, _ := os.FindProcess(pid)
	switch err := proc.Signal(syscall.Signal(0)); {
	case err == nil:
		return fmt.Errorf("chess server already running as process %d", pid)
	case errors.Is(err, os.ErrProcessDone), errors.Is(err, syscall.ESRCH):
		log.Printf("Reusing stale PID file %s for defunct process %d", path, pid)
		return nil
	default:
		return fmt.Errorf("process %d exists but cannot be checked: %v", pid, err)
	}
}
