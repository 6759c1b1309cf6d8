package fhir_dto

// FamilyMemberHistoryEntry is the envelope a family member history is stored under.
type FamilyMemberHistoryEntry struct {
	Resource FamilyMemberHistory `json:"resource"`
}

type FamilyMemberHistory struct {
	ResourceType string                         `json:"resourceType"`
	ID           string                         `json:"id,omitempty"`
	Status       string                         `json:"status"`
	Relationship CodeableConcept                `json:"relationship"`
	Gender       string                         `json:"gender,omitempty"`
	BornDate     string                         `json:"bornDate,omitempty"`
	Condition    []FamilyMemberHistoryCondition `json:"condition,omitempty"`
	Note         []Annotation                   `json:"note,omitempty"`
}

type FamilyMemberHistoryCondition struct {
	Code      CodeableConcept `json:"code"`
	OnsetAge  *Age            `json:"onsetAge,omitempty"`
	Extension []Extension     `json:"extension,omitempty"`
}
