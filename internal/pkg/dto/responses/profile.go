package responses

import (
	"time"

	"github.com/goccy/go-json"
)

type Profile struct {
	GorillaID   *string         `json:"gorilla_id"`
	ProfileData json.RawMessage `json:"profile_data"`
	IsImported  bool            `json:"is_imported"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
