package creep

import (
	"fmt"
	"strings"

	"extguard/internal/catalog"
)

// maxExplainedPerms caps how many risky-permission explanations a
// notification body spells out before collapsing to "+N more".
const maxExplainedPerms = 3

// Key returns the notification dedup key for the event. Keys are
// per-kind and per-extension so unrelated alerts never suppress each
// other.
func (e *Event) Key() string {
	switch e.Kind {
	case KindEscalation:
		return "perm-creep-" + e.Snapshot.ID
	case KindScoreIncrease:
		return "ext-worse-" + e.Snapshot.ID
	default:
		if e.Severity == SevCritical {
			return "ext-risky-" + e.Snapshot.ID
		}
		return "ext-warn-" + e.Snapshot.ID
	}
}

// Title renders the notification title.
func (e *Event) Title() string {
	switch e.Kind {
	case KindEscalation:
		return "Permission Creep Alert"
	case KindScoreIncrease:
		return fmt.Sprintf("%q risk increased — Grade %s", e.Snapshot.Name, e.Snapshot.Grade)
	default:
		if e.Severity == SevCritical {
			return fmt.Sprintf("DANGER: %q — Grade %s", e.Snapshot.Name, e.Snapshot.Grade)
		}
		return fmt.Sprintf("Warning: %q — Grade %s", e.Snapshot.Name, e.Snapshot.Grade)
	}
}

// Message renders the notification body, naming the exact permissions
// that triggered an escalation.
func (e *Event) Message(cat *catalog.Catalog) string {
	switch e.Kind {
	case KindEscalation:
		return fmt.Sprintf("Extension %q just gained new permissions after an update: %s",
			e.Snapshot.Name, strings.Join(e.Added, ", "))
	case KindScoreIncrease:
		return fmt.Sprintf("Grade changed: %s → %s. Review recommended.", e.PrevGrade, e.Snapshot.Grade)
	default:
		all := e.Snapshot.AllPermissions()
		msg := fmt.Sprintf("This extension is %s. It has %d permissions.%s",
			strings.ToLower(e.Snapshot.Grade.RiskLevel()), len(all), riskySummary(all, cat))
		if e.Severity == SevCritical {
			msg += " Consider removing it."
		}
		return msg
	}
}

// ActivityIcon returns the icon recorded with the activity entry.
func (e *Event) ActivityIcon() string {
	switch e.Kind {
	case KindEscalation:
		return "⚠️"
	case KindScoreIncrease:
		return "📈"
	default:
		return "🔍"
	}
}

// ActivityLine renders the audit-trail description of the event.
func (e *Event) ActivityLine() string {
	switch e.Kind {
	case KindEscalation:
		return fmt.Sprintf("Permission creep: %q gained %s", e.Snapshot.Name, strings.Join(e.Added, ", "))
	case KindScoreIncrease:
		return fmt.Sprintf("Risk increased: %q grade %s → %s", e.Snapshot.Name, e.PrevGrade, e.Snapshot.Grade)
	default:
		return fmt.Sprintf("New extension: %q — Grade %s", e.Snapshot.Name, e.Snapshot.Grade)
	}
}

// riskySummary lists up to maxExplainedPerms HIGH/CRITICAL permission
// explanations, with an overflow count.
func riskySummary(perms []string, cat *catalog.Catalog) string {
	var risky []string
	for _, p := range perms {
		if r, ok := cat.Lookup(p); ok && r.Tier.Dangerous() {
			risky = append(risky, p)
		}
	}
	if len(risky) == 0 {
		return ""
	}

	shown := risky
	if len(shown) > maxExplainedPerms {
		shown = shown[:maxExplainedPerms]
	}
	parts := make([]string, 0, len(shown))
	for _, p := range shown {
		parts = append(parts, cat.Explain(p))
	}
	summary := " Risky permissions: " + strings.Join(parts, ", ")
	if extra := len(risky) - len(shown); extra > 0 {
		summary += fmt.Sprintf(" +%d more", extra)
	}
	return summary
}
