package dedup

import "github.com/tidwall/gjson"

// Concept is a FHIR concept-like field (code, relationship) after its raw JSON
// shape has been classified. It is one of Unresolved, Text or Coded.
type Concept interface {
	isConcept()
}

// Unresolved is a concept that is missing or has an unusable JSON type.
type Unresolved struct{}

// Text is a concept given as a bare string.
type Text string

// Coded is a CodeableConcept object.
type Coded struct {
	Text   string
	Coding []Coding
}

type Coding struct {
	System  string
	Code    string
	Display string
}

func (Unresolved) isConcept() {}
func (Text) isConcept()       {}
func (Coded) isConcept()      {}

// ParseConcept classifies a raw JSON value. It never fails: anything that is
// neither a string nor an object is Unresolved, and wrongly typed members of a
// CodeableConcept read as empty strings.
func ParseConcept(value gjson.Result) Concept {
	switch {
	case value.Type == gjson.String:
		return Text(value.Str)
	case value.IsObject():
		coded := Coded{Text: stringMember(value, "text")}
		if coding := value.Get("coding"); coding.IsArray() {
			for _, item := range coding.Array() {
				coded.Coding = append(coded.Coding, Coding{
					System:  stringMember(item, "system"),
					Code:    stringMember(item, "code"),
					Display: stringMember(item, "display"),
				})
			}
		}
		return coded
	default:
		return Unresolved{}
	}
}

// ResolveText returns the display text of a concept: the text of a Coded
// concept, else the display of its first coding, else "".
func ResolveText(concept Concept) string {
	switch c := concept.(type) {
	case Text:
		return string(c)
	case Coded:
		if c.Text != "" {
			return c.Text
		}
		if len(c.Coding) > 0 {
			return c.Coding[0].Display
		}
		return ""
	case Unresolved:
		return ""
	default:
		return ""
	}
}

// FirstCode returns the code of the first coding of a Coded concept.
func FirstCode(concept Concept) string {
	if c, ok := concept.(Coded); ok && len(c.Coding) > 0 {
		return c.Coding[0].Code
	}
	return ""
}

func stringMember(value gjson.Result, name string) string {
	if !value.IsObject() {
		return ""
	}
	member := value.Get(gjson.Escape(name))
	if member.Type != gjson.String {
		return ""
	}
	return member.Str
}
