package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestBuildConditionSummary(t *testing.T) {
	entries := rawEntries(
		`{"resource":{"code":{"text":"Asthma"},"assertedDate":"2024-01-15T10:00:00Z","clinicalStatus":{"coding":[{"code":"active"}]},"category":[{"coding":[{"display":"Diagnosis"}]}],"onsetPeriod":{"start":"2023-12-01T00:00:00Z"},"text":{"div":"<div xmlns=\"http://www.w3.org/1999/xhtml\">wheezing</div>"}}}`,
		`{"resource":{"code":{"coding":[{"display":"Diabetes"}]},"assertedDate":"2019-03-02","clinicalStatus":"INACTIVE"}}`,
		`{"resource":{"code":{"text":"Migraine"},"assertedDate":"2024-06-01"}}`,
		`{"code":{"text":"Unwrapped"},"assertedDate":"2022-01-01"}`,
	)

	t.Run("all years", func(t *testing.T) {
		summary := buildConditionSummary(entries, "")

		assert.Equal(t, "All Years", summary.SelectedYear)
		assert.Equal(t, []string{"2024", "2019"}, summary.Years)
		require.Len(t, summary.Active, 1)
		assert.Equal(t, "Asthma", summary.Active[0].Name)
		assert.Equal(t, "2024-01-15", summary.Active[0].RecordedDate)
		assert.Equal(t, "2023-12-01", summary.Active[0].OnsetDate)
		assert.Equal(t, "Diagnosis", summary.Active[0].Category)
		assert.Equal(t, "wheezing", summary.Active[0].Text)
		require.Len(t, summary.Inactive, 1)
		assert.Equal(t, "Diabetes", summary.Inactive[0].Name)
		require.Len(t, summary.Unknown, 1)
		assert.Equal(t, "unknown", summary.Unknown[0].Status)
	})

	t.Run("year filter", func(t *testing.T) {
		summary := buildConditionSummary(entries, "2019")

		assert.Empty(t, summary.Active)
		assert.Len(t, summary.Inactive, 1)
		assert.Empty(t, summary.Unknown)
		assert.Equal(t, []string{"2024", "2019"}, summary.Years)
	})
}

func TestDisplayStatus(t *testing.T) {
	testCases := []struct {
		name     string
		status   string
		expected string
	}{
		{name: "coded", status: `{"coding":[{"system":"http://terminology.hl7.org/CodeSystem/condition-clinical","code":"resolved"}]}`, expected: "resolved"},
		{name: "coding without code", status: `{"coding":[{"display":"Active"}]}`, expected: "unknown"},
		{name: "text only object", status: `{"text":"active"}`, expected: "unknown"},
		{name: "plain string", status: `"Active"`, expected: "active"},
		{name: "number", status: `3`, expected: "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, displayStatus(gjson.Parse(tc.status)))
		})
	}
}

func TestBuildFamilyHistorySummary(t *testing.T) {
	entries := rawEntries(
		`{"resource":{"relationship":{"coding":[{"display":"Mother"}]},"gender":"female","bornDate":"1955","condition":[
			{"code":{"text":"Breast cancer"},"onsetAge":{"value":60,"unit":"a"},"extension":[{"url":"https://www.healthgorilla.com/fhir/StructureDefinition/familymemberhistory-cause-of-death","valueBoolean":true}]},
			{"code":{"coding":[{"display":"Hypertension"}]}}
		],"note":[{"text":"late diagnosis"}]}}`,
		`"not-an-object"`,
	)

	summary := buildFamilyHistorySummary(entries)

	require.Len(t, summary.Members, 1)
	member := summary.Members[0]
	assert.Equal(t, "Mother", member.Relationship)
	assert.Equal(t, "health-unknown", member.Status)
	require.Len(t, member.Conditions, 2)
	assert.Equal(t, "60a", member.Conditions[0].OnsetAge)
	assert.True(t, member.Conditions[0].CauseOfDeath)
	assert.Equal(t, "Hypertension", member.Conditions[1].Name)
	assert.False(t, member.Conditions[1].CauseOfDeath)
	assert.Equal(t, []string{"late diagnosis"}, member.Notes)
}
