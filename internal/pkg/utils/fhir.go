package utils

import (
	"strings"
	"theracare-service/internal/pkg/dto/responses"

	"github.com/tidwall/gjson"
)

// GetFullName joins the given names and the family name of the first
// HumanName of a Patient.
func GetFullName(patient gjson.Result) string {
	name := patient.Get("name.0")
	if !name.Exists() {
		return ""
	}

	var given []string
	for _, part := range name.Get("given").Array() {
		given = append(given, part.String())
	}

	fullName := strings.Join(given, " ") + " " + name.Get("family").String()
	return strings.TrimSpace(fullName)
}

// SimplifyPatientBundle reduces a Patient searchset Bundle to the fields
// shown in search results.
func SimplifyPatientBundle(bundle []byte) *responses.PatientSearch {
	result := &responses.PatientSearch{Patients: []responses.PatientSummary{}}

	for _, entry := range gjson.GetBytes(bundle, "entry").Array() {
		resource := entry.Get("resource")
		if !resource.IsObject() {
			continue
		}
		result.Patients = append(result.Patients, responses.PatientSummary{
			ID:     resource.Get("id").String(),
			Name:   GetFullName(resource),
			DOB:    resource.Get("birthDate").String(),
			Gender: resource.Get("gender").String(),
		})
	}

	result.Count = len(result.Patients)
	return result
}
