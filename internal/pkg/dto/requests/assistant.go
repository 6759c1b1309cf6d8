package requests

import "io"

type ExtractInformation struct {
	Text string `json:"text" validate:"required"`
}

type TranscribeAudio struct {
	FileName    string
	ContentType string
	Size        int64
	Audio       io.Reader
}
