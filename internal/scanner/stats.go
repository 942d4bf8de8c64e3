package scanner

import (
	"encoding/json"
	"fmt"
	"time"

	"extguard/internal/kv"
)

const statsKey = "stats"

// Stats is the aggregate scan summary shown on the dashboard:
// monitored count (excluding this tool), flagged D/F count, and the
// last full-scan time.
type Stats struct {
	Monitored int       `json:"monitored"`
	Flagged   int       `json:"flagged"`
	LastScan  time.Time `json:"last_scan"`
}

// LoadStats reads the persisted stats record. Absent or malformed
// records yield zero stats.
func LoadStats(backend kv.Store) (Stats, error) {
	data, ok, err := backend.Get(statsKey)
	if err != nil {
		return Stats{}, fmt.Errorf("scanner: load stats: %w", err)
	}
	if !ok {
		return Stats{}, nil
	}
	var s Stats
	if err := json.Unmarshal(data, &s); err != nil {
		return Stats{}, nil
	}
	return s, nil
}

// ClearStats resets the stats record. Used by clear-history.
func ClearStats(backend kv.Store) error {
	data, err := json.Marshal(Stats{})
	if err != nil {
		return err
	}
	if err := backend.Set(statsKey, data); err != nil {
		return fmt.Errorf("scanner: clear stats: %w", err)
	}
	return nil
}

func (e *Engine) saveStats(s Stats) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return e.cfg.KV.Set(statsKey, data)
}
