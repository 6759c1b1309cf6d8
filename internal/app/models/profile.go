package models

import "encoding/json"

type Profile struct {
	UserID      string          `json:"user_id"`
	GorillaID   *string         `json:"gorilla_id"`
	ProfileData json.RawMessage `json:"profile_data"`
	TimeModel
}

// IsImported reports whether the profile came from the clinical data gateway.
func (p *Profile) IsImported() bool {
	return p.GorillaID != nil && *p.GorillaID != ""
}
