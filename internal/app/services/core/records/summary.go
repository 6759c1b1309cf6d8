package records

import (
	"regexp"
	"sort"
	"strings"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dedup"
	"theracare-service/internal/pkg/dto/responses"
	"theracare-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

var (
	htmlTagPattern   = regexp.MustCompile(`<[^<]+?>`)
	xmlnsAttrPattern = regexp.MustCompile(`xmlns="[^"]+"`)
)

// buildConditionSummary groups stored conditions by clinical status. Only
// entries wrapped under "resource" are shown. year is either empty, "All
// Years" or a prefix of the recorded date.
func buildConditionSummary(entries []json.RawMessage, year string) *responses.ConditionSummary {
	if year == "" {
		year = constvars.DisplayAllYears
	}
	summary := &responses.ConditionSummary{
		SelectedYear: year,
		Years:        []string{},
		Active:       []responses.ConditionRow{},
		Inactive:     []responses.ConditionRow{},
		Unknown:      []responses.ConditionRow{},
	}

	years := map[string]bool{}
	for _, entry := range entries {
		resource := gjson.GetBytes(entry, "resource")
		if !resource.IsObject() {
			continue
		}
		row := conditionRow(resource)
		if row.RecordedDate != "" {
			years[utils.YearOf(row.RecordedDate)] = true
		}
		if year != constvars.DisplayAllYears && !strings.HasPrefix(row.RecordedDate, year) {
			continue
		}

		switch row.Status {
		case constvars.ClinicalStatusActive:
			summary.Active = append(summary.Active, row)
		case constvars.ClinicalStatusInactive:
			summary.Inactive = append(summary.Inactive, row)
		default:
			summary.Unknown = append(summary.Unknown, row)
		}
	}

	for y := range years {
		summary.Years = append(summary.Years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(summary.Years)))
	return summary
}

func conditionRow(resource gjson.Result) responses.ConditionRow {
	return responses.ConditionRow{
		Name:         dedup.ResolveText(dedup.ParseConcept(resource.Get("code"))),
		Text:         cleanNarrative(resource.Get("text.div").String()),
		RecordedDate: utils.TruncateDate(resource.Get("assertedDate").String()),
		Status:       displayStatus(resource.Get("clinicalStatus")),
		Category:     resource.Get("category.0.coding.0.display").String(),
		OnsetDate:    utils.TruncateDate(resource.Get("onsetPeriod.start").String()),
	}
}

func displayStatus(status gjson.Result) string {
	switch concept := dedup.ParseConcept(status).(type) {
	case dedup.Coded:
		if code := dedup.FirstCode(concept); code != "" {
			return code
		}
		return constvars.DisplayUnknownCategory
	case dedup.Text:
		return strings.ToLower(string(concept))
	default:
		return constvars.DisplayUnknownCategory
	}
}

func cleanNarrative(div string) string {
	text := htmlTagPattern.ReplaceAllString(div, "")
	text = xmlnsAttrPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

func buildFamilyHistorySummary(entries []json.RawMessage) *responses.FamilyHistorySummary {
	summary := &responses.FamilyHistorySummary{Members: []responses.FamilyMemberRow{}}

	for _, entry := range entries {
		resource := dedup.ResolveResource(entry)
		if !resource.IsObject() {
			continue
		}

		status := resource.Get("status").String()
		if status == "" {
			status = constvars.FamilyHistoryStatusHealthUnknown
		}
		member := responses.FamilyMemberRow{
			Relationship: dedup.ResolveText(dedup.ParseConcept(resource.Get("relationship"))),
			Gender:       resource.Get("gender").String(),
			BornDate:     resource.Get("bornDate").String(),
			Status:       status,
			Conditions:   []responses.FamilyConditionRow{},
		}

		for _, condition := range resource.Get("condition").Array() {
			row := responses.FamilyConditionRow{
				Name:         dedup.ResolveText(dedup.ParseConcept(condition.Get("code"))),
				CauseOfDeath: isCauseOfDeath(condition.Get("extension")),
			}
			if age := condition.Get("onsetAge"); age.IsObject() && age.Get("value").Exists() {
				row.OnsetAge = age.Get("value").String() + age.Get("unit").String()
			}
			member.Conditions = append(member.Conditions, row)
		}
		for _, note := range resource.Get("note").Array() {
			if text := note.Get("text").String(); text != "" {
				member.Notes = append(member.Notes, text)
			}
		}

		summary.Members = append(summary.Members, member)
	}
	return summary
}

func isCauseOfDeath(extensions gjson.Result) bool {
	for _, extension := range extensions.Array() {
		if extension.Get("url").String() == constvars.FhirExtensionCauseOfDeath {
			return extension.Get("valueBoolean").Bool()
		}
	}
	return false
}
