package utils

import (
	"strings"
	"theracare-service/internal/pkg/constvars"
)

// TruncateDate drops the time part of a FHIR dateTime.
func TruncateDate(value string) string {
	date, _, _ := strings.Cut(value, "T")
	return date
}

// DateOrNotSpecified truncates a date for reports, using a placeholder when empty.
func DateOrNotSpecified(value string) string {
	if value == "" {
		return constvars.ReportNotSpecified
	}
	return TruncateDate(value)
}

// YearOf returns the leading year part of a YYYY[-MM[-DD]] date.
func YearOf(date string) string {
	year, _, _ := strings.Cut(date, "-")
	return year
}
