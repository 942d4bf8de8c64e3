package daemon

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"extguard/internal/inventory"
	"extguard/internal/scanner"
)

// Processor handles one lifecycle event file: parse, hand to the scan
// engine, archive the file.
type Processor struct {
	dirs   DirConfig
	engine *scanner.Engine
}

// NewProcessor creates a processor over the scan engine.
func NewProcessor(dirs DirConfig, engine *scanner.Engine) *Processor {
	return &Processor{dirs: dirs, engine: engine}
}

// Process handles a single event file through its lifecycle:
// read → parse → scan → archive to processed/ (or failed/).
func (p *Processor) Process(ctx context.Context, path string) error {
	// Reject symlinks before reading: an inbox symlink must not let
	// the daemon read arbitrary filesystem paths.
	fi, err := os.Lstat(path)
	if err != nil {
		return fmt.Errorf("stat event file: %w", err)
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return p.fail(path, fmt.Errorf("rejected symlink: %s", filepath.Base(path)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read event file: %w", err)
	}

	ev, err := inventory.ParseEvent(data)
	if err != nil {
		return p.fail(path, err)
	}

	if err := p.engine.HandleEvent(ctx, ev); err != nil {
		return p.fail(path, err)
	}

	dst := filepath.Join(p.dirs.ProcessedDir(), filepath.Base(path))
	if err := moveFile(path, dst); err != nil {
		return fmt.Errorf("archive event file: %w", err)
	}
	return nil
}

// fail moves the event file to failed/ and returns the cause.
func (p *Processor) fail(path string, cause error) error {
	dst := filepath.Join(p.dirs.FailedDir(), filepath.Base(path))
	if err := moveFile(path, dst); err != nil {
		return fmt.Errorf("move to failed (%v): %w", cause, err)
	}
	return cause
}
