package requests

import "github.com/goccy/go-json"

type UpsertProfile struct {
	GorillaID   *string         `json:"gorilla_id"`
	ProfileData json.RawMessage `json:"profile_data" validate:"required"`
}
