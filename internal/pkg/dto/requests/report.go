package requests

type GenerateReport struct {
	IncludeNarrative bool `json:"include_narrative"`
}
