package audit

// Entry is one line in the hash-chained JSONL audit trail. All fields
// are scalars (no map[string]any) so json.Marshal field order is
// deterministic and hashes are reproducible.
type Entry struct {
	Timestamp   string `json:"ts"`
	ScanID      string `json:"scan_id"`
	ExtensionID string `json:"extension_id,omitempty"`
	Kind        string `json:"kind"` // first_sight, escalation, score_increase, removed, scan_summary, failure
	Grade       string `json:"grade,omitempty"`
	Score       int    `json:"score,omitempty"`
	Detail      string `json:"detail"`
	PrevHash    string `json:"prev_hash"`
}
