package inventory

import (
	"encoding/json"
	"fmt"
)

// EventType is a lifecycle transition reported by the host platform.
type EventType string

const (
	EventInstalled   EventType = "installed"
	EventUpdated     EventType = "updated"
	EventEnabled     EventType = "enabled"
	EventUninstalled EventType = "uninstalled"
)

// Event is one lifecycle notification. Uninstall events carry only the
// extension id; the other kinds carry the full item.
type Event struct {
	Type      EventType `json:"event"`
	ID        string    `json:"id,omitempty"`
	Extension *Item     `json:"extension,omitempty"`
}

// ParseEvent decodes and validates a lifecycle event payload.
func ParseEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("parse lifecycle event: %w", err)
	}

	switch ev.Type {
	case EventInstalled, EventUpdated, EventEnabled:
		if ev.Extension == nil {
			return Event{}, fmt.Errorf("%s event missing extension payload", ev.Type)
		}
		ev.Extension.Normalize()
		if err := ev.Extension.Validate(); err != nil {
			return Event{}, fmt.Errorf("%s event: %w", ev.Type, err)
		}
		if ev.ID == "" {
			ev.ID = ev.Extension.ID
		}
	case EventUninstalled:
		if ev.ID == "" {
			return Event{}, fmt.Errorf("uninstalled event missing id")
		}
	default:
		return Event{}, fmt.Errorf("unknown lifecycle event type %q", ev.Type)
	}

	return ev, nil
}
