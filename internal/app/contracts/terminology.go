package contracts

import (
	"context"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
)

type IMOClient interface {
	CoreSearch(ctx context.Context, text, domain string) ([]byte, error)
	Tokenize(ctx context.Context, text string) ([]byte, error)
}

type TerminologyUsecase interface {
	Search(ctx context.Context, request *requests.TerminologySearch) (json.RawMessage, error)
	Tokenize(ctx context.Context, request *requests.Tokenize) ([]responses.TokenizedEntity, error)
}
