package responses

import (
	"time"

	"github.com/goccy/go-json"
)

type UserInfo struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserData is everything stored for one user.
type UserData struct {
	UserInfo      UserInfo          `json:"user_info"`
	Profile       *Profile          `json:"profile"`
	Conditions    []json.RawMessage `json:"conditions"`
	FamilyHistory []json.RawMessage `json:"family_history"`
}
