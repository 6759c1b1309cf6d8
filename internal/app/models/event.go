package models

import "time"

type Event struct {
	Type       string                 `json:"type"`
	UserID     string                 `json:"user_id"`
	RequestID  string                 `json:"request_id,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}
