package utils

import (
	"strings"
	"theracare-service/internal/pkg/dto/requests"
	"unicode"
)

func capitalize(input string) string {
	if len(input) == 0 {
		return input
	}
	runes := []rune(input)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

func SanitizeRegisterUserRequest(input *requests.RegisterUser) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	input.Password = strings.TrimSpace(input.Password)
}

func SanitizeLoginUserRequest(input *requests.LoginUser) {
	input.Username = strings.TrimSpace(input.Username)
	input.Password = strings.TrimSpace(input.Password)
}

func SanitizePatientSearchRequest(input *requests.PatientSearch) {
	input.Given = strings.TrimSpace(input.Given)
	input.Family = strings.TrimSpace(input.Family)
	input.Birthdate = strings.TrimSpace(input.Birthdate)
}

func SanitizeManualConditionRequest(input *requests.ManualCondition) {
	input.ConditionName = strings.TrimSpace(input.ConditionName)
	input.ConditionText = strings.TrimSpace(input.ConditionText)
	input.RecordedDate = strings.TrimSpace(input.RecordedDate)
	input.ClinicalStatus = strings.TrimSpace(strings.ToLower(input.ClinicalStatus))
	input.Category = strings.TrimSpace(input.Category)
	input.OnsetDate = strings.TrimSpace(input.OnsetDate)
}

func SanitizeManualFamilyHistoryRequest(input *requests.ManualFamilyHistory) {
	input.Relationship = capitalize(strings.TrimSpace(input.Relationship))
	input.Gender = strings.TrimSpace(strings.ToLower(input.Gender))
	input.BirthYear = strings.TrimSpace(input.BirthYear)
	input.Notes = strings.TrimSpace(input.Notes)

	for i := range input.Conditions {
		input.Conditions[i].Title = strings.TrimSpace(input.Conditions[i].Title)
	}
}

func SanitizeExtractInformationRequest(input *requests.ExtractInformation) {
	input.Text = strings.TrimSpace(input.Text)
}
