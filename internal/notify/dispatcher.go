// Package notify emits user-facing alerts through pluggable sinks,
// filtered by the global notification policy and a per-key cooldown.
package notify

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Policy is the user-configurable global notification filter.
type Policy string

const (
	PolicyAll      Policy = "all"
	PolicyCritical Policy = "critical"
	PolicySilent   Policy = "silent"
)

// ValidPolicy reports whether p is one of the known policies.
func ValidPolicy(p Policy) bool {
	return p == PolicyAll || p == PolicyCritical || p == PolicySilent
}

// Priority of a notification.
type Priority string

const (
	PriorityNormal   Priority = "normal"
	PriorityCritical Priority = "critical"
)

// Cooldown is the minimum interval between two emissions sharing the
// same key. A courtesy dedup, not a correctness guarantee: the map
// behind it is volatile and lost on restart.
const Cooldown = 30 * time.Second

// Notification is what a sink presents to the user.
type Notification struct {
	ID       string   `json:"id"`
	Key      string   `json:"key"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Priority Priority `json:"priority"`
}

// Dispatcher filters and fans out notifications. It owns the volatile
// cooldown map; all other state lives elsewhere.
type Dispatcher struct {
	mu        sync.Mutex
	lastFired map[string]time.Time
	policy    Policy
	sinks     []Sink
	now       func() time.Time
}

// NewDispatcher creates a dispatcher with the given policy and sinks.
func NewDispatcher(policy Policy, sinks ...Sink) *Dispatcher {
	if !ValidPolicy(policy) {
		policy = PolicyAll
	}
	return &Dispatcher{
		lastFired: make(map[string]time.Time),
		policy:    policy,
		sinks:     sinks,
		now:       time.Now,
	}
}

// SetPolicy replaces the global policy at runtime.
func (d *Dispatcher) SetPolicy(policy Policy) error {
	if !ValidPolicy(policy) {
		return fmt.Errorf("unknown notification policy %q", policy)
	}
	d.mu.Lock()
	d.policy = policy
	d.mu.Unlock()
	return nil
}

// SetClock overrides the time source. Tests only.
func (d *Dispatcher) SetClock(now func() time.Time) {
	d.now = now
}

// Fire emits a notification unless the policy or the per-key cooldown
// suppresses it. Returns whether the alert was actually emitted.
// Suppression is a normal outcome, never an error. The cooldown
// timestamp for key advances only on actual emission, so a suppressed
// attempt does not reset the window. Sink failures are logged and
// never propagate — presentation must not block core logic.
func (d *Dispatcher) Fire(key, title, message string, pri Priority) bool {
	d.mu.Lock()
	if d.policy == PolicySilent {
		d.mu.Unlock()
		return false
	}
	if d.policy == PolicyCritical && pri != PriorityCritical {
		d.mu.Unlock()
		return false
	}

	now := d.now()
	if last, ok := d.lastFired[key]; ok && now.Sub(last) < Cooldown {
		d.mu.Unlock()
		return false
	}
	d.lastFired[key] = now
	sinks := d.sinks
	d.mu.Unlock()

	n := Notification{
		ID:       ulid.Make().String(),
		Key:      key,
		Title:    title,
		Message:  message,
		Priority: pri,
	}
	for _, sink := range sinks {
		if err := sink.Present(n); err != nil {
			fmt.Fprintf(os.Stderr, "notify: sink failed for %s: %v\n", key, err)
		}
	}
	return true
}
