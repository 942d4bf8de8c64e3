package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"extguard/internal/activity"
	"extguard/internal/audit"
	"extguard/internal/catalog"
	"extguard/internal/config"
	"extguard/internal/grading"
	"extguard/internal/inventory"
	"extguard/internal/kv"
	"extguard/internal/notify"
	"extguard/internal/scanner"
	"extguard/internal/settings"
	"extguard/internal/store"
)

var (
	flagStateDir  string
	flagInventory string
	flagCatalog   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStateDir, "state-dir", "", "State directory (default ~/.extguard)")
	rootCmd.PersistentFlags().StringVar(&flagInventory, "inventory", "", "Inventory JSON path (default <state-dir>/inventory.json)")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Catalog override YAML path")
}

// app bundles everything a command needs. Close releases the KV layer
// and audit log.
type app struct {
	env      *config.Env
	kv       kv.Store
	store    *store.Store
	activity *activity.Log
	notify   *notify.Dispatcher
	engine   *scanner.Engine
	audit    *audit.Log
	settings settings.Settings
}

// openApp wires the full pipeline: env + flags → KV → catalog →
// grading → store/activity/settings → dispatcher → scan engine.
func openApp() (*app, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	if flagStateDir != "" {
		env.StateDir = flagStateDir
		env.Database = filepath.Join(flagStateDir, "extguard.db")
		env.AuditLog = filepath.Join(flagStateDir, "audit.jsonl")
		env.InboxDir = filepath.Join(flagStateDir, "inbox")
		if flagInventory == "" {
			env.Inventory = filepath.Join(flagStateDir, "inventory.json")
		}
	}
	if flagInventory != "" {
		env.Inventory = flagInventory
	}
	if flagCatalog != "" {
		env.Catalog = flagCatalog
	}

	backend, err := kv.OpenSQLite(env.Database)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	cat, err := catalog.Load(env.Catalog)
	if err != nil {
		backend.Close()
		return nil, err
	}

	sets, err := settings.Load(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	log, err := activity.Open(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	sinks := []notify.Sink{notify.WriterSink{W: os.Stderr}}
	if hook := notify.NewWebhookSink(notify.WebhookConfig{URL: env.WebhookURL, Format: env.WebhookFmt}); hook != nil {
		sinks = append(sinks, hook)
	}
	dispatcher := notify.NewDispatcher(sets.Notifications, sinks...)

	auditLog, err := audit.Open(env.AuditLog)
	if err != nil {
		backend.Close()
		return nil, err
	}

	st := store.New(backend)
	engine, err := scanner.New(scanner.Config{
		SelfID:   env.SelfID,
		Source:   inventory.FileSource{Path: env.Inventory},
		Grading:  grading.NewEngine(cat),
		Store:    st,
		Activity: log,
		Notify:   dispatcher,
		KV:       backend,
		Audit:    auditLog,
	})
	if err != nil {
		auditLog.Close()
		backend.Close()
		return nil, err
	}

	return &app{
		env:      env,
		kv:       backend,
		store:    st,
		activity: log,
		notify:   dispatcher,
		engine:   engine,
		audit:    auditLog,
		settings: sets,
	}, nil
}

func (a *app) Close() {
	if a.audit != nil {
		_ = a.audit.Close()
	}
	_ = a.kv.Close()
}
