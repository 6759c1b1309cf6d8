package responses

import "github.com/goccy/go-json"

// SaveRecords always carries both counts of a save.
type SaveRecords struct {
	Category   string `json:"category"`
	Duplicates int    `json:"duplicates"`
	Added      int    `json:"added"`
	Total      int    `json:"total"`
}

type Records struct {
	Category  string            `json:"category"`
	GorillaID *string           `json:"gorilla_id"`
	Entries   []json.RawMessage `json:"entries,omitempty"`
	Bundle    interface{}       `json:"bundle,omitempty"`
}

type ConditionSummary struct {
	SelectedYear string         `json:"selected_year"`
	Years        []string       `json:"years"`
	Active       []ConditionRow `json:"active"`
	Inactive     []ConditionRow `json:"inactive"`
	Unknown      []ConditionRow `json:"unknown"`
}

type ConditionRow struct {
	Name         string `json:"name"`
	Text         string `json:"text,omitempty"`
	RecordedDate string `json:"recorded_date"`
	Status       string `json:"status"`
	Category     string `json:"category"`
	OnsetDate    string `json:"onset_date"`
}

type FamilyHistorySummary struct {
	Members []FamilyMemberRow `json:"members"`
}

type FamilyMemberRow struct {
	Relationship string               `json:"relationship"`
	Gender       string               `json:"gender"`
	BornDate     string               `json:"born_date"`
	Status       string               `json:"status"`
	Conditions   []FamilyConditionRow `json:"conditions"`
	Notes        []string             `json:"notes,omitempty"`
}

type FamilyConditionRow struct {
	Name         string `json:"name"`
	OnsetAge     string `json:"onset_age,omitempty"`
	CauseOfDeath bool   `json:"cause_of_death"`
}
