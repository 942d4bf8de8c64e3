// Package scanner drives full-inventory and incremental scans,
// composing the grading engine, state store, creep classifier,
// notification dispatcher, and activity log. It is the only package
// that touches the external inventory.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"extguard/internal/activity"
	"extguard/internal/audit"
	"extguard/internal/creep"
	"extguard/internal/grading"
	"extguard/internal/inventory"
	"extguard/internal/kv"
	"extguard/internal/model"
	"extguard/internal/notify"
	"extguard/internal/settings"
	"extguard/internal/store"
)

// Module is the activity-log module name for extension monitoring.
const Module = "extensionMonitor"

// Config wires an Engine.
type Config struct {
	// SelfID is this tool's own id in the inventory; it is skipped
	// during scans.
	SelfID string

	Source   inventory.Source
	Grading  *grading.Engine
	Store    *store.Store
	Activity *activity.Log
	Notify   *notify.Dispatcher
	KV       kv.Store

	// Audit is optional; nil disables the tamper-evident trail.
	Audit *audit.Log
}

// Engine is the scan orchestrator.
type Engine struct {
	cfg Config
	now func() time.Time
}

// New creates an Engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Source == nil || cfg.Grading == nil || cfg.Store == nil ||
		cfg.Activity == nil || cfg.Notify == nil || cfg.KV == nil {
		return nil, fmt.Errorf("scanner: incomplete configuration")
	}
	return &Engine{cfg: cfg, now: time.Now}, nil
}

// SetClock overrides the time source. Tests only.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Failure records one extension whose grading or persistence failed
// during a scan. Failures are collected, never thrown: one bad item
// must not abort its siblings.
type Failure struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Err  string `json:"error"`
}

// Summary is the outcome of one full scan pass.
type Summary struct {
	RunID     string    `json:"run_id"`
	Monitored int       `json:"monitored"`
	Flagged   int       `json:"flagged"`
	Failures  []Failure `json:"failures,omitempty"`
	ScannedAt time.Time `json:"scanned_at"`
}

// FullScan enumerates the whole inventory, grades every item, and
// persists each snapshot. Skips this tool itself and theme items.
// Per-extension failures land in Summary.Failures; an unreachable
// inventory or storage layer aborts the pass with prior snapshots
// untouched.
func (e *Engine) FullScan(ctx context.Context) (Summary, error) {
	runID := ulid.Make().String()
	sum := Summary{RunID: runID, ScannedAt: e.now()}

	items, err := e.cfg.Source.List()
	if err != nil {
		e.record(audit.Entry{ScanID: runID, Kind: "failure", Detail: err.Error()})
		if lerr := e.cfg.Activity.Record(Module, "❌", "Extension scan failed: inventory unavailable"); lerr != nil {
			fmt.Fprintf(os.Stderr, "scanner: record scan failure: %v\n", lerr)
		}
		return sum, err
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if item.ID == e.cfg.SelfID || item.Type == inventory.TypeTheme {
			continue
		}

		snap, err := e.grade(item)
		if err != nil {
			sum.Failures = append(sum.Failures, Failure{ID: item.ID, Name: item.Name, Err: err.Error()})
			continue
		}
		if _, err := e.cfg.Store.Put(snap); err != nil {
			if errors.Is(err, store.ErrUnavailable) {
				// Global storage failure: abort the pass. Extensions
				// persisted so far keep their new snapshots — each
				// extension's grade+put step is the unit of atomicity.
				return sum, err
			}
			sum.Failures = append(sum.Failures, Failure{ID: item.ID, Name: item.Name, Err: err.Error()})
			continue
		}

		sum.Monitored++
		if snap.Grade.Flagged() {
			sum.Flagged++
		}
	}

	if err := e.saveStats(Stats{
		Monitored: sum.Monitored,
		Flagged:   sum.Flagged,
		LastScan:  sum.ScannedAt,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "scanner: persist stats: %v\n", err)
	}

	desc := fmt.Sprintf("Extension scan completed: %d monitored, %d flagged", sum.Monitored, sum.Flagged)
	if n := len(sum.Failures); n > 0 {
		desc += fmt.Sprintf(", %d failed", n)
	}
	if err := e.cfg.Activity.Record(Module, "🔍", desc); err != nil {
		fmt.Fprintf(os.Stderr, "scanner: record scan summary: %v\n", err)
	}
	e.record(audit.Entry{ScanID: runID, Kind: "scan_summary", Detail: desc})

	return sum, nil
}

// HandleEvent processes one lifecycle event, then re-runs a full scan:
// a single install shifts the aggregate flagged count across the whole
// inventory, not just its own grade.
func (e *Engine) HandleEvent(ctx context.Context, ev inventory.Event) error {
	if ev.Type == inventory.EventUninstalled {
		if err := e.handleUninstall(ev.ID); err != nil {
			return err
		}
		_, err := e.FullScan(ctx)
		return err
	}

	if ev.Extension == nil {
		return fmt.Errorf("%s event without extension payload", ev.Type)
	}
	item := *ev.Extension
	if item.ID == e.cfg.SelfID || item.Type == inventory.TypeTheme {
		return nil
	}

	snap, err := e.grade(item)
	if err != nil {
		return fmt.Errorf("grade %s: %w", item.ID, err)
	}
	prev, err := e.cfg.Store.Put(snap)
	if err != nil {
		return fmt.Errorf("persist %s: %w", item.ID, err)
	}

	if notable := creep.Classify(prev, snap, e.cfg.Grading.Catalog()); notable != nil {
		e.dispatch(notable)
	} else {
		// Not notable: the store update happened silently; the history
		// still gets its lifecycle line.
		switch ev.Type {
		case inventory.EventUpdated:
			e.history("🔄", fmt.Sprintf("Extension updated: %q v%s (Grade: %s)", snap.Name, snap.Version, snap.Grade))
		case inventory.EventEnabled:
			e.history("✅", fmt.Sprintf("Extension enabled: %q — Grade %s", snap.Name, snap.Grade))
		case inventory.EventInstalled:
			e.history("🔍", fmt.Sprintf("New extension: %q — Grade %s", snap.Name, snap.Grade))
		}
	}

	_, err = e.FullScan(ctx)
	return err
}

func (e *Engine) handleUninstall(id string) error {
	prev, err := e.cfg.Store.Remove(id)
	if err != nil {
		return fmt.Errorf("remove %s: %w", id, err)
	}
	name := "Unknown"
	if prev != nil {
		name = prev.Name
	}
	e.history("🗑️", fmt.Sprintf("Extension removed: %q", name))
	e.record(audit.Entry{ExtensionID: id, Kind: "removed", Detail: name})
	return nil
}

// grade turns an inventory item into a snapshot.
func (e *Engine) grade(item inventory.Item) (model.Snapshot, error) {
	if err := item.Validate(); err != nil {
		return model.Snapshot{}, err
	}
	score := e.cfg.Grading.Score(item.Permissions, item.HostPermissions)
	return model.Snapshot{
		ID:              item.ID,
		Name:            item.Name,
		Version:         item.Version,
		Enabled:         item.Enabled,
		Permissions:     item.Permissions,
		HostPermissions: item.HostPermissions,
		Score:           score,
		Grade:           e.cfg.Grading.Grade(score),
		ScannedAt:       e.now(),
	}, nil
}

// dispatch emits the notification and history for a notable event.
func (e *Engine) dispatch(ev *creep.Event) {
	// The policy can change underneath a long-running daemon, so re-read
	// it from storage before every dispatch. A stale in-memory policy
	// would ignore "extguard policy silent" until restart.
	if s, err := settings.Load(e.cfg.KV); err == nil {
		_ = e.cfg.Notify.SetPolicy(s.Notifications)
	}

	pri := notify.PriorityNormal
	if ev.Severity == creep.SevCritical {
		pri = notify.PriorityCritical
	}
	e.cfg.Notify.Fire(ev.Key(), ev.Title(), ev.Message(e.cfg.Grading.Catalog()), pri)
	e.history(ev.ActivityIcon(), ev.ActivityLine())
	e.record(audit.Entry{
		ExtensionID: ev.Snapshot.ID,
		Kind:        string(ev.Kind),
		Grade:       string(ev.Snapshot.Grade),
		Score:       ev.Snapshot.Score,
		Detail:      ev.ActivityLine(),
	})
}

func (e *Engine) history(icon, description string) {
	if err := e.cfg.Activity.Record(Module, icon, description); err != nil {
		fmt.Fprintf(os.Stderr, "scanner: record activity: %v\n", err)
	}
}

func (e *Engine) record(entry audit.Entry) {
	if e.cfg.Audit == nil {
		return
	}
	if err := e.cfg.Audit.Record(entry); err != nil {
		fmt.Fprintf(os.Stderr, "scanner: audit record: %v\n", err)
	}
}
