package constvars

const (
	IMODefaultDomain       = "condition"
	IMOCodeSystemIMO       = "imo"
	IMOCodeSystemRxNorm    = "rxnorm"
	IMOSearchPath          = "/core/search"
	IMOTokenizePath        = "/nlp/entities"
	IMOSearchResponseItems = "SearchTermResponse.items"
)

// IMOValidSemantics are the entity semantics kept by medical tokenization.
var IMOValidSemantics = map[string]bool{
	"problem":       true,
	"drug":          true,
	"treatment":     true,
	"imo_procedure": true,
	"test":          true,
}

const (
	OpenAIModelExtraction = "gpt-4o-mini"
	OpenAITemperature     = 0.3
	OpenAICodeFenceJSON   = "```json"
	OpenAICodeFence       = "```"
)
