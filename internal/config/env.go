// Package config loads environment overrides for paths and daemon
// behavior, under the EXTGUARD_ namespace.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const namespace = "EXTGUARD"

// Env holds environment-sourced configuration. Flags override env;
// env overrides defaults.
type Env struct {
	StateDir     string        `envconfig:"STATE_DIR"`
	InboxDir     string        `envconfig:"INBOX_DIR"`
	Inventory    string        `envconfig:"INVENTORY"`
	Catalog      string        `envconfig:"CATALOG"`
	Database     string        `envconfig:"DATABASE"`
	AuditLog     string        `envconfig:"AUDIT_LOG"`
	WebhookURL   string        `envconfig:"WEBHOOK_URL"`
	WebhookFmt   string        `envconfig:"WEBHOOK_FORMAT" default:"generic"`
	SelfID       string        `envconfig:"SELF_ID"`
	PollMode     bool          `envconfig:"POLL_MODE"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL"`
}

// LoadEnv reads EXTGUARD_* variables and fills path defaults under
// ~/.extguard.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	base := env.StateDir
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			base = filepath.Join(os.TempDir(), "extguard")
		} else {
			base = filepath.Join(home, ".extguard")
		}
		env.StateDir = base
	}
	if env.InboxDir == "" {
		env.InboxDir = filepath.Join(base, "inbox")
	}
	if env.Inventory == "" {
		env.Inventory = filepath.Join(base, "inventory.json")
	}
	if env.Database == "" {
		env.Database = filepath.Join(base, "extguard.db")
	}
	if env.AuditLog == "" {
		env.AuditLog = filepath.Join(base, "audit.jsonl")
	}
	return &env, nil
}
