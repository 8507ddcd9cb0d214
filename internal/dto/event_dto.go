package dto

import "time"

// SearchAuditEvent is published after every processed turn and consumed
// asynchronously into the search_logs table.
type SearchAuditEvent struct {
	SessionId    string             `json:"session_id"`
	Query        string             `json:"query"`
	Intent       string             `json:"intent"`
	SubIntent    string             `json:"sub_intent,omitempty"`
	ParsedTraits map[string]float64 `json:"parsed_traits,omitempty"`
	ResultCount  int                `json:"result_count"`
	DurationMs   int64              `json:"duration_ms"`
	OccurredAt   time.Time          `json:"occurred_at"`
}
