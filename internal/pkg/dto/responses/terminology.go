package responses

type TokenizedEntity struct {
	Text         string            `json:"text"`
	SemanticType string            `json:"semantic_type"`
	Assertion    string            `json:"assertion"`
	Codes        map[string]string `json:"codes"`
}
