// Package settings persists the user-tunable knobs: the notification
// policy, the monitor toggle, and the periodic scan interval.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"extguard/internal/kv"
	"extguard/internal/notify"
)

const storeKey = "settings"

// DefaultScanInterval is the period of the full re-scan timer.
const DefaultScanInterval = 24 * time.Hour

// Settings is the durable settings record.
type Settings struct {
	Notifications  notify.Policy `json:"notifications"`
	MonitorEnabled bool          `json:"monitor_enabled"`
	ScanInterval   time.Duration `json:"scan_interval"`
}

// Defaults returns the settings used before the user changes anything.
func Defaults() Settings {
	return Settings{
		Notifications:  notify.PolicyAll,
		MonitorEnabled: true,
		ScanInterval:   DefaultScanInterval,
	}
}

// Load reads settings from the KV layer. Absent → defaults. Malformed
// → defaults with a diagnostic. Unreachable storage is a real error.
func Load(backend kv.Store) (Settings, error) {
	data, ok, err := backend.Get(storeKey)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: load: %w", err)
	}
	if !ok {
		return Defaults(), nil
	}

	s := Defaults()
	if err := json.Unmarshal(data, &s); err != nil {
		fmt.Fprintf(os.Stderr, "settings: malformed record, using defaults: %v\n", err)
		return Defaults(), nil
	}
	if !notify.ValidPolicy(s.Notifications) {
		s.Notifications = notify.PolicyAll
	}
	if s.ScanInterval <= 0 {
		s.ScanInterval = DefaultScanInterval
	}
	return s, nil
}

// Save writes settings durably.
func Save(backend kv.Store, s Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := backend.Set(storeKey, data); err != nil {
		return fmt.Errorf("settings: persist: %w", err)
	}
	return nil
}
