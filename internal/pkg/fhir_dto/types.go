package fhir_dto

type Reference struct {
	Reference string `json:"reference,omitempty" bson:"reference,omitempty"`
	Type      string `json:"type,omitempty" bson:"type,omitempty"`
	Display   string `json:"display,omitempty" bson:"display,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty" bson:"coding,omitempty"`
	Text   string   `json:"text,omitempty" bson:"text,omitempty"`
}

type Coding struct {
	System  string `json:"system,omitempty" bson:"system,omitempty"`
	Version string `json:"version,omitempty" bson:"version,omitempty"`
	Code    string `json:"code,omitempty" bson:"code,omitempty"`
	Display string `json:"display,omitempty" bson:"display,omitempty"`
}

type Period struct {
	Start string `json:"start,omitempty" bson:"start,omitempty"`
	End   string `json:"end,omitempty" bson:"end,omitempty"`
}

type HumanName struct {
	Use    string   `json:"use,omitempty" bson:"use,omitempty"`
	Text   string   `json:"text,omitempty" bson:"text,omitempty"`
	Family string   `json:"family,omitempty" bson:"family,omitempty"`
	Given  []string `json:"given,omitempty" bson:"given,omitempty"`
	Prefix []string `json:"prefix,omitempty" bson:"prefix,omitempty"`
}

type Narrative struct {
	Status string `json:"status,omitempty"`
	Div    string `json:"div,omitempty"`
}

type Annotation struct {
	Text string `json:"text"`
}

// Extension carries one of the value[x] choices used by the health gateway.
type Extension struct {
	Url          string `json:"url"`
	ValueBoolean *bool  `json:"valueBoolean,omitempty"`
	ValueString  string `json:"valueString,omitempty"`
}

type Age struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}
