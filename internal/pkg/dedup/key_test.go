package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeyConditions(t *testing.T) {
	t.Run("Wrapped Entry", func(t *testing.T) {
		entry := []byte(`{"resource":{"resourceType":"Condition","code":{"text":"Asthma"},"assertedDate":"2020-01-01T10:00:00Z","clinicalStatus":"active"}}`)

		key := ExtractKey(entry, CategoryConditions)

		assert.Equal(t, [3]string{"Asthma", "2020-01-01T10:00:00Z", "active"}, key.Fields)
		assert.Equal(t, CategoryConditions, key.Category)
	})

	t.Run("Unwrapped Entry", func(t *testing.T) {
		entry := []byte(`{"code":{"coding":[{"display":"Hypertension"}]},"assertedDate":"2019-05-02","clinicalStatus":"Active"}`)

		key := ExtractKey(entry, CategoryConditions)

		assert.Equal(t, [3]string{"Hypertension", "2019-05-02", "Active"}, key.Fields)
	})

	t.Run("Resource Not An Object", func(t *testing.T) {
		entry := []byte(`{"resource":"broken","code":{"text":"Asthma"}}`)

		key := ExtractKey(entry, CategoryConditions)

		assert.Equal(t, "Asthma", key.Fields[0])
	})

	t.Run("Empty Text Falls Back To Coding", func(t *testing.T) {
		entry := []byte(`{"resource":{"code":{"text":"","coding":[{"display":"Migraine"}]}}}`)

		assert.Equal(t, "Migraine", ExtractKey(entry, CategoryConditions).Fields[0])
	})

	t.Run("Status Object Compared Structurally", func(t *testing.T) {
		first := []byte(`{"resource":{"clinicalStatus":{"coding":[{"code":"active","system":"s"}]}}}`)
		second := []byte(`{"resource":{"clinicalStatus":{"coding":[{"system":"s","code":"active"}]}}}`)

		assert.Equal(t, ExtractKey(first, CategoryConditions), ExtractKey(second, CategoryConditions))
	})

	t.Run("Malformed Input Never Fails", func(t *testing.T) {
		inputs := []string{``, `null`, `"text"`, `[1,2]`, `{"resource":{"code":[],"assertedDate":5,"clinicalStatus":null}}`}
		for _, input := range inputs {
			key := ExtractKey([]byte(input), CategoryConditions)
			assert.Equal(t, [3]string{}, key.Fields, input)
		}
	})
}

func TestExtractKeyFamilyHistory(t *testing.T) {
	entry := []byte(`{"resource":{"resourceType":"FamilyMemberHistory","relationship":{"coding":[{"code":"FTH","display":"Father","system":"urn:oid:2.16.840.1.113883.5.111"}]},"gender":"male","bornDate":"1950"}}`)

	key := ExtractKey(entry, CategoryFamilyHistory)

	assert.Equal(t, [3]string{"Father", "male", "1950"}, key.Fields)
	assert.Equal(t, map[string]string{"relationship": "Father", "gender": "male", "bornDate": "1950"}, key.Map())
}

func TestExtractKeyIsDeterministic(t *testing.T) {
	entries := [][]byte{
		[]byte(`{"resource":{"code":{"text":"Asthma"},"assertedDate":"2020-01-01","clinicalStatus":{"coding":[{"code":"active"}]}}}`),
		[]byte(`{"code":"plain"}`),
		[]byte(`{}`),
	}
	for _, entry := range entries {
		assert.Equal(t, ExtractKey(entry, CategoryConditions), ExtractKey(entry, CategoryConditions))
		assert.Equal(t, ExtractKey(entry, CategoryFamilyHistory), ExtractKey(entry, CategoryFamilyHistory))
	}
}

func TestParseCategory(t *testing.T) {
	category, ok := ParseCategory("conditions")
	assert.True(t, ok)
	assert.Equal(t, CategoryConditions, category)

	category, ok = ParseCategory("family-history")
	assert.True(t, ok)
	assert.Equal(t, CategoryFamilyHistory, category)

	_, ok = ParseCategory("allergies")
	assert.False(t, ok)
}
