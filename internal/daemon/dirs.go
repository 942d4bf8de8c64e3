package daemon

import (
	"fmt"
	"os"
	"path/filepath"
)

// dirPerm is the permission for daemon-managed directories.
const dirPerm = 0750

// DirConfig holds the daemon directory layout. The platform adapter
// drops lifecycle event files into Inbox; State holds processed and
// failed events plus the PID file.
type DirConfig struct {
	Inbox string
	State string
}

// DefaultDirConfig returns the layout under the user's home.
func DefaultDirConfig() DirConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		base := filepath.Join(os.TempDir(), "extguard")
		return DirConfig{Inbox: filepath.Join(base, "inbox"), State: filepath.Join(base, "state")}
	}
	base := filepath.Join(home, ".extguard")
	return DirConfig{Inbox: filepath.Join(base, "inbox"), State: filepath.Join(base, "state")}
}

// ProcessedDir returns where handled event files are archived.
func (d DirConfig) ProcessedDir() string {
	return filepath.Join(d.State, "processed")
}

// FailedDir returns where unparseable or failed event files land.
func (d DirConfig) FailedDir() string {
	return filepath.Join(d.State, "failed")
}

// EnsureDirs creates all required directories. Idempotent.
func EnsureDirs(cfg DirConfig) error {
	dirs := []string{
		cfg.Inbox,
		cfg.State,
		cfg.ProcessedDir(),
		cfg.FailedDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// moveFile renames src to dst, falling back to copy+remove across
// filesystem boundaries (EXDEV on bind mounts).
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0600); err != nil {
		return err
	}
	return os.Remove(src)
}
