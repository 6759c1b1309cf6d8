package utils

import (
	"testing"
	"theracare-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func TestTruncateDate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "date time", input: "2020-01-01T10:20:30Z", expected: "2020-01-01"},
		{name: "date only", input: "2024-01-15", expected: "2024-01-15"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TruncateDate(tc.input))
		})
	}
}

func TestDateOrNotSpecified(t *testing.T) {
	assert.Equal(t, constvars.ReportNotSpecified, DateOrNotSpecified(""))
	assert.Equal(t, "2024-01-15", DateOrNotSpecified("2024-01-15T10:00:00Z"))
}

func TestYearOf(t *testing.T) {
	assert.Equal(t, "2019", YearOf("2019-05-02"))
	assert.Equal(t, "2024", YearOf("2024"))
}
