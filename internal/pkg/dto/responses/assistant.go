package responses

type Transcription struct {
	Text       string `json:"text"`
	ObjectName string `json:"object_name,omitempty"`
}

type ExtractedCondition struct {
	ConditionName     *string `json:"condition_name"`
	ConditionText     *string `json:"condition_text"`
	RecordedDate      *string `json:"recorded_date"`
	ClinicalStatus    *string `json:"clinical_status"`
	Category          *string `json:"category"`
	OnsetDate         *string `json:"onset_date"`
	IsRelevant        bool    `json:"is_relevant"`
	RelevanceFeedback string  `json:"relevance_feedback"`
}

type ExtractedFamilyHistory struct {
	Relationship      *string                    `json:"relationship"`
	Gender            *string                    `json:"gender"`
	BirthYear         *string                    `json:"birth_year"`
	Conditions        []ExtractedFamilyCondition `json:"conditions"`
	Notes             *string                    `json:"notes"`
	IsRelevant        bool                       `json:"is_relevant"`
	RelevanceFeedback string                     `json:"relevance_feedback"`
}

type ExtractedFamilyCondition struct {
	Name           string `json:"name"`
	AgeAtOnset     *int   `json:"age_at_onset"`
	IsCauseOfDeath bool   `json:"is_cause_of_death"`
}
