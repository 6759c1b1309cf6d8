package requests

type TerminologySearch struct {
	Text   string
	Domain string
}

type Tokenize struct {
	Text string `json:"text"`
}
