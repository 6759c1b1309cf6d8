package fhir_dto

import "github.com/goccy/go-json"

// ConditionEntry is the envelope a condition is stored under.
type ConditionEntry struct {
	Resource Condition `json:"resource"`
}

type Condition struct {
	ResourceType   string            `json:"resourceType"`
	ID             string            `json:"id,omitempty"`
	ClinicalStatus *CodeableConcept  `json:"clinicalStatus,omitempty"`
	Category       []CodeableConcept `json:"category,omitempty"`
	Code           *CodeableConcept  `json:"code,omitempty"`
	Subject        *Reference        `json:"subject,omitempty"`
	OnsetDateTime  string            `json:"onsetDateTime,omitempty"`
	OnsetPeriod    *Period           `json:"onsetPeriod,omitempty"`
	AssertedDate   string            `json:"assertedDate,omitempty"`
	Text           *Narrative        `json:"text,omitempty"`
	Note           []Annotation      `json:"note,omitempty"`
	TokenizedData  json.RawMessage   `json:"tokenized_data,omitempty"`
}
