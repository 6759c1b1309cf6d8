package responses

import "time"

type HealthReport struct {
	GeneratedAt     time.Time            `json:"generated_at"`
	Patient         ReportPatient        `json:"patient"`
	TotalConditions int                  `json:"total_conditions"`
	Conditions      []ReportCondition    `json:"conditions"`
	FamilyHistory   []ReportFamilyMember `json:"family_history"`
	Narrative       string               `json:"narrative,omitempty"`
}

type ReportPatient struct {
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date"`
	Email     string `json:"email"`
}

type ReportCondition struct {
	Name         string `json:"name"`
	OnsetDate    string `json:"onset_date"`
	RecordedDate string `json:"recorded_date"`
}

type ReportFamilyMember struct {
	Relationship string                  `json:"relationship"`
	Conditions   []ReportFamilyCondition `json:"conditions"`
	BornDate     string                  `json:"born_date"`
	Gender       string                  `json:"gender"`
}

type ReportFamilyCondition struct {
	Name           string `json:"name"`
	AgeAtDiagnosis string `json:"age_at_diagnosis"`
	IsCauseOfDeath bool   `json:"is_cause_of_death"`
}

type ReportGenerated struct {
	ObjectName   string        `json:"object_name"`
	URL          string        `json:"url"`
	URLExpiresAt time.Time     `json:"url_expires_at"`
	Report       *HealthReport `json:"report"`
}
