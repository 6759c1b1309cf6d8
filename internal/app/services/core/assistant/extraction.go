package assistant

import (
	"fmt"
	"strings"
	"theracare-service/internal/pkg/constvars"

	"github.com/tidwall/gjson"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindNullableString
	kindNullableNumber
	kindBool
	kindArray
)

type fieldRule struct {
	name string
	kind fieldKind
}

var conditionFields = []fieldRule{
	{"condition_name", kindNullableString},
	{"condition_text", kindNullableString},
	{"recorded_date", kindNullableString},
	{"clinical_status", kindNullableString},
	{"category", kindNullableString},
	{"onset_date", kindNullableString},
	{"is_relevant", kindBool},
	{"relevance_feedback", kindString},
}

var familyHistoryFields = []fieldRule{
	{"relationship", kindNullableString},
	{"gender", kindNullableString},
	{"birth_year", kindNullableString},
	{"conditions", kindArray},
	{"notes", kindNullableString},
	{"is_relevant", kindBool},
	{"relevance_feedback", kindString},
}

var familyConditionFields = []fieldRule{
	{"name", kindString},
	{"age_at_onset", kindNullableNumber},
	{"is_cause_of_death", kindBool},
}

// stripCodeFences removes markdown code fences around a model answer.
func stripCodeFences(content string) string {
	content = strings.ReplaceAll(content, constvars.OpenAICodeFenceJSON, "")
	content = strings.ReplaceAll(content, constvars.OpenAICodeFence, "")
	return strings.TrimSpace(content)
}

// checkFields verifies every field is present with the expected JSON type.
func checkFields(object gjson.Result, rules []fieldRule) error {
	if !object.IsObject() {
		return fmt.Errorf("expected a JSON object")
	}
	for _, rule := range rules {
		value := object.Get(rule.name)
		if !value.Exists() {
			return fmt.Errorf("missing required field %s", rule.name)
		}
		if !matchesKind(value, rule.kind) {
			return fmt.Errorf("invalid type for field %s", rule.name)
		}
	}
	return nil
}

func matchesKind(value gjson.Result, kind fieldKind) bool {
	switch kind {
	case kindString:
		return value.Type == gjson.String
	case kindNullableString:
		return value.Type == gjson.String || value.Type == gjson.Null
	case kindNullableNumber:
		return value.Type == gjson.Number || value.Type == gjson.Null
	case kindBool:
		return value.IsBool()
	case kindArray:
		return value.IsArray()
	default:
		return false
	}
}
