package reports

import (
	"strings"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dto/responses"
	"theracare-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

func buildReportPatient(user *models.User, profile *models.Profile) responses.ReportPatient {
	patient := responses.ReportPatient{
		Name:      constvars.ReportNotSpecified,
		Gender:    constvars.ReportNotSpecified,
		BirthDate: constvars.ReportNotSpecified,
		Email:     constvars.ReportNotSpecified,
	}
	if user != nil && user.Email != "" {
		patient.Email = user.Email
	}
	if profile == nil {
		return patient
	}

	data := gjson.ParseBytes(profile.ProfileData)
	if name := utils.GetFullName(data); name != "" {
		patient.Name = name
	}
	if gender := data.Get("gender").String(); gender != "" {
		patient.Gender = gender
	}
	if birthDate := data.Get("birthDate").String(); birthDate != "" {
		patient.BirthDate = birthDate
	}
	return patient
}

// buildReportConditions keeps the wrapped conditions that have a name, taken
// from code.text or from a plain string code.
func buildReportConditions(entries []json.RawMessage) []responses.ReportCondition {
	conditions := []responses.ReportCondition{}
	for _, entry := range entries {
		resource := gjson.GetBytes(entry, "resource")
		if !resource.IsObject() {
			continue
		}

		var name string
		switch code := resource.Get("code"); {
		case code.IsObject():
			name = code.Get("text").String()
		case code.Type == gjson.String:
			name = code.Str
		}
		if strings.TrimSpace(name) == "" {
			continue
		}

		conditions = append(conditions, responses.ReportCondition{
			Name:         name,
			RecordedDate: utils.DateOrNotSpecified(resource.Get("assertedDate").String()),
			OnsetDate:    utils.DateOrNotSpecified(onsetDate(resource)),
		})
	}
	return conditions
}

func onsetDate(resource gjson.Result) string {
	var onset string
	switch period := resource.Get("onsetPeriod"); {
	case period.IsObject():
		onset = period.Get("start").String()
	case period.Type == gjson.String:
		onset = period.Str
	}
	if onset == "" {
		onset = resource.Get("onsetDateTime").String()
	}
	return onset
}

func buildReportFamilyHistory(entries []json.RawMessage) []responses.ReportFamilyMember {
	members := []responses.ReportFamilyMember{}
	for _, entry := range entries {
		resource := gjson.GetBytes(entry, "resource")
		if !resource.IsObject() {
			continue
		}

		relationship := conceptText(resource.Get("relationship"))
		conditions := []responses.ReportFamilyCondition{}
		for _, condition := range resource.Get("condition").Array() {
			if !condition.IsObject() {
				continue
			}
			name := conceptText(condition.Get("code"))
			if strings.TrimSpace(name) == "" || strings.EqualFold(name, constvars.ReportNoKnownProblems) {
				continue
			}

			ageAtDiagnosis := constvars.ReportNotSpecified
			if age := condition.Get("onsetAge.value"); age.Exists() {
				ageAtDiagnosis = age.String()
			}
			conditions = append(conditions, responses.ReportFamilyCondition{
				Name:           name,
				AgeAtDiagnosis: ageAtDiagnosis,
				IsCauseOfDeath: causeOfDeath(condition.Get("extension")),
			})
		}

		if len(conditions) == 0 && strings.TrimSpace(relationship) == "" {
			continue
		}
		if relationship == "" {
			relationship = constvars.ReportNotSpecified
		}
		members = append(members, responses.ReportFamilyMember{
			Relationship: relationship,
			Conditions:   conditions,
			BornDate:     stringOrNotSpecified(resource.Get("bornDate")),
			Gender:       stringOrNotSpecified(resource.Get("gender")),
		})
	}
	return members
}

// conceptText reads the text of a CodeableConcept, falling back to the first
// coding that has a display.
func conceptText(concept gjson.Result) string {
	if !concept.IsObject() {
		return ""
	}
	if text := concept.Get("text").String(); text != "" {
		return text
	}
	for _, coding := range concept.Get("coding").Array() {
		if display := coding.Get("display"); display.Exists() {
			return display.String()
		}
	}
	return ""
}

func causeOfDeath(extensions gjson.Result) bool {
	for _, extension := range extensions.Array() {
		if strings.HasSuffix(extension.Get("url").String(), "cause-of-death") && extension.Get("valueBoolean").Bool() {
			return true
		}
	}
	return false
}

func stringOrNotSpecified(value gjson.Result) string {
	if value.String() == "" {
		return constvars.ReportNotSpecified
	}
	return value.String()
}
