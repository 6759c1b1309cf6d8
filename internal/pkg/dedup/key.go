package dedup

import (
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

type Category string

const (
	CategoryConditions    Category = "conditions"
	CategoryFamilyHistory Category = "family-history"
)

func ParseCategory(value string) (Category, bool) {
	switch Category(value) {
	case CategoryConditions, CategoryFamilyHistory:
		return Category(value), true
	}
	return "", false
}

// Key is the flat comparison key of a resource entry. Conditions use
// {name, date, status}; family history uses {relationship, gender, bornDate}.
// StatusType is the JSON type a condition status was read from, so a string
// status never equals an object that renders to the same text.
type Key struct {
	Category   Category
	Fields     [3]string
	StatusType gjson.Type
}

var keyFieldNames = map[Category][3]string{
	CategoryConditions:    {"name", "date", "status"},
	CategoryFamilyHistory: {"relationship", "gender", "bornDate"},
}

// Map renders the key with its category field names, for logs and responses.
func (k Key) Map() map[string]string {
	names := keyFieldNames[k.Category]
	return map[string]string{
		names[0]: k.Fields[0],
		names[1]: k.Fields[1],
		names[2]: k.Fields[2],
	}
}

// ResolveResource returns the resource wrapped by an entry envelope, or the
// entry itself when it has no object "resource" member.
func ResolveResource(entry []byte) gjson.Result {
	parsed := gjson.ParseBytes(entry)
	if resource := parsed.Get("resource"); parsed.IsObject() && resource.IsObject() {
		return resource
	}
	return parsed
}

// ExtractKey builds the comparison key of an entry. Dates and status are taken
// verbatim; any missing or wrongly typed field reads as "".
func ExtractKey(entry []byte, category Category) Key {
	resource := ResolveResource(entry)
	key := Key{Category: category}

	switch category {
	case CategoryConditions:
		status := member(resource, "clinicalStatus")
		key.Fields = [3]string{
			ResolveText(ParseConcept(member(resource, "code"))),
			stringMember(resource, "assertedDate"),
			verbatim(status),
		}
		key.StatusType = verbatimType(status)
	case CategoryFamilyHistory:
		key.Fields = [3]string{
			ResolveText(ParseConcept(member(resource, "relationship"))),
			stringMember(resource, "gender"),
			stringMember(resource, "bornDate"),
		}
	}
	return key
}

func member(value gjson.Result, name string) gjson.Result {
	if !value.IsObject() {
		return gjson.Result{}
	}
	return value.Get(gjson.Escape(name))
}

// verbatim keeps strings as they are and renders objects, arrays, numbers and
// booleans as canonical JSON so that structurally equal values compare equal.
func verbatim(value gjson.Result) string {
	switch value.Type {
	case gjson.String:
		return value.Str
	case gjson.Null:
		return ""
	case gjson.Number, gjson.True, gjson.False:
		return value.Raw
	case gjson.JSON:
		var decoded interface{}
		if err := json.Unmarshal([]byte(value.Raw), &decoded); err != nil {
			return value.Raw
		}
		canonical, err := json.Marshal(decoded)
		if err != nil {
			return value.Raw
		}
		return string(canonical)
	default:
		return ""
	}
}

// verbatimType folds null and missing values into the string type, matching
// the "" they render to.
func verbatimType(value gjson.Result) gjson.Type {
	switch value.Type {
	case gjson.Number, gjson.True, gjson.False, gjson.JSON:
		return value.Type
	default:
		return gjson.String
	}
}
