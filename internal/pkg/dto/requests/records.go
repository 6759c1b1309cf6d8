package requests

import "github.com/goccy/go-json"

type SaveRecordsBatch struct {
	Entries []json.RawMessage `json:"entries" validate:"required,min=1"`
}

type ManualCondition struct {
	ConditionName  string `json:"condition_name" validate:"required,max=255"`
	ConditionText  string `json:"condition_text"`
	RecordedDate   string `json:"recorded_date" validate:"required,fhir_date"`
	ClinicalStatus string `json:"clinical_status" validate:"required,oneof=active inactive resolved"`
	Category       string `json:"category" validate:"required,oneof=Problem Diagnosis Sympt Other"`
	OnsetDate      string `json:"onset_date" validate:"omitempty,fhir_date"`
}

type ManualFamilyHistory struct {
	Relationship   string                   `json:"relationship" validate:"required,oneof=Father Mother Sibling Grandparent Other"`
	Gender         string                   `json:"gender" validate:"required,oneof=male female other unknown"`
	BirthYear      string                   `json:"birth_year" validate:"omitempty,year"`
	Conditions     []FamilyHistoryCondition `json:"conditions" validate:"required,min=1,dive"`
	AgeAtOnset     *int                     `json:"age_at_onset" validate:"omitempty,min=0,max=150"`
	IsCauseOfDeath bool                     `json:"is_cause_of_death"`
	Notes          string                   `json:"notes"`
}

// FamilyHistoryCondition is a condition picked from the terminology search.
// The IMO fields are optional and kept on the entry as search data.
type FamilyHistoryCondition struct {
	Title         string `json:"kndg_title" validate:"required"`
	ID            string `json:"kndg_id,omitempty"`
	ICD10CMTitle  string `json:"ICD10CM_TITLE,omitempty"`
	ICD10CMCode   string `json:"ICD10CM_CODE,omitempty"`
	SNOMEDCTTitle string `json:"SNOMEDCT_TITLE,omitempty"`
	SNOMEDCTCode  string `json:"SNOMEDCT_CODE,omitempty"`
}
