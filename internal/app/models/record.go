package models

import "encoding/json"

// RecordCollection is the persisted list of resource entries of one
// category for one user. Entries keep their insertion order.
type RecordCollection struct {
	UserID    string            `json:"user_id" bson:"userId"`
	Category  string            `json:"category" bson:"category"`
	GorillaID *string           `json:"gorilla_id,omitempty" bson:"gorillaId,omitempty"`
	Entries   []json.RawMessage `json:"entries" bson:"-"`
	TimeModel `bson:",inline"`
}
