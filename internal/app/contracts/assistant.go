package contracts

import (
	"context"
	"io"
	"theracare-service/internal/app/models"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
)

type ChatCompletionInput struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float32
	MaxTokens    int
}

type OpenAIClient interface {
	IsConfigured() bool
	ChatCompletion(ctx context.Context, input *ChatCompletionInput) (string, error)
	Transcribe(ctx context.Context, fileName string, audio io.Reader) (string, error)
}

type AssistantUsecase interface {
	TranscribeAudio(ctx context.Context, session *models.Session, request *requests.TranscribeAudio) (*responses.Transcription, error)
	ExtractCondition(ctx context.Context, request *requests.ExtractInformation) (*responses.ExtractedCondition, error)
	ExtractFamilyHistory(ctx context.Context, request *requests.ExtractInformation) (*responses.ExtractedFamilyHistory, error)
}
