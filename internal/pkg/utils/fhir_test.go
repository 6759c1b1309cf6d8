package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestGetFullName(t *testing.T) {
	testCases := []struct {
		name     string
		patient  string
		expected string
	}{
		{name: "Given and family", patient: `{"name":[{"given":["John","Paul"],"family":"Smith"}]}`, expected: "John Paul Smith"},
		{name: "Family only", patient: `{"name":[{"family":"Smith"}]}`, expected: "Smith"},
		{name: "Given only", patient: `{"name":[{"given":["John"]}]}`, expected: "John"},
		{name: "No name", patient: `{"id":"p1"}`, expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, GetFullName(gjson.Parse(tc.patient)))
		})
	}
}

func TestSimplifyPatientBundle(t *testing.T) {
	bundle := []byte(`{
		"resourceType": "Bundle",
		"entry": [
			{"resource": {"id": "p1", "name": [{"given": ["Ann"], "family": "Lee"}], "birthDate": "1990-05-04", "gender": "female"}},
			{"fullUrl": "no-resource"},
			{"resource": "not-an-object"}
		]
	}`)

	result := SimplifyPatientBundle(bundle)

	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "p1", result.Patients[0].ID)
	assert.Equal(t, "Ann Lee", result.Patients[0].Name)
	assert.Equal(t, "1990-05-04", result.Patients[0].DOB)
	assert.Equal(t, "female", result.Patients[0].Gender)
}

func TestSimplifyPatientBundleWithoutEntries(t *testing.T) {
	result := SimplifyPatientBundle([]byte(`{"resourceType":"Bundle","total":0}`))

	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Patients)
}
