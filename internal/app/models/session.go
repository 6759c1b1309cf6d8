package models

import "time"

// Session is stored as JSON in redis under the session id and travels
// through the request context once the bearer token has been verified.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}
