package daemon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"extguard/internal/scanner"
)

// Config holds full daemon configuration.
type Config struct {
	Dirs         DirConfig
	ScanInterval time.Duration
	PollMode     bool
	PollInterval time.Duration
}

// Daemon watches the inbox for lifecycle events and re-scans the
// inventory on a timer.
type Daemon struct {
	cfg       Config
	engine    *scanner.Engine
	processor *Processor
}

// New creates a daemon with validated configuration.
func New(cfg Config, engine *scanner.Engine) (*Daemon, error) {
	if cfg.Dirs.Inbox == "" || cfg.Dirs.State == "" {
		return nil, fmt.Errorf("inbox and state directories are required")
	}
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = 24 * time.Hour
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = pollDefault
	}

	return &Daemon{
		cfg:       cfg,
		engine:    engine,
		processor: NewProcessor(cfg.Dirs, engine),
	}, nil
}

// Run starts the daemon. Blocks until ctx is cancelled. On startup it
// runs one full scan, drains any event files already in the inbox,
// then watches for new ones.
func (d *Daemon) Run(ctx context.Context) error {
	if err := EnsureDirs(d.cfg.Dirs); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	pidPath := filepath.Join(d.cfg.Dirs.State, "daemon.pid")
	if err := acquirePIDLock(pidPath); err != nil {
		return fmt.Errorf("acquire PID lock: %w", err)
	}
	defer func() { _ = os.Remove(pidPath) }()

	if _, err := d.engine.FullScan(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "daemon: startup scan: %v\n", err)
	}

	handler := func(path string) {
		if err := d.processor.Process(ctx, path); err != nil {
			fmt.Fprintf(os.Stderr, "daemon: process %s: %v\n", filepath.Base(path), err)
		}
	}

	if err := ScanExisting(d.cfg.Dirs.Inbox, handler); err != nil {
		return fmt.Errorf("scan existing: %w", err)
	}

	go d.runRescanTimer(ctx)

	if d.cfg.PollMode {
		pw := NewPollWatcher(d.cfg.Dirs.Inbox, handler, d.cfg.PollInterval)
		return pw.Run(ctx)
	}

	w := NewInboxWatcher(d.cfg.Dirs.Inbox, handler)
	return w.Run(ctx)
}

// runRescanTimer fires the periodic full re-scan.
func (d *Daemon) runRescanTimer(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := d.engine.FullScan(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "daemon: periodic scan: %v\n", err)
			}
		}
	}
}

// acquirePIDLock writes the current PID to the file and checks for
// stale locks.
func acquirePIDLock(path string) error {
	if data, err := os.ReadFile(path); err == nil {
		pid, err := strconv.Atoi(string(data))
		if err == nil {
			if process, err := os.FindProcess(pid); err == nil {
				if err := process.Signal(syscall.Signal(0)); err == nil {
					return fmt.Errorf("another daemon is running (PID %d)", pid)
				}
			}
		}
		// Stale PID file — remove it.
		_ = os.Remove(path)
	}

	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0600)
}
