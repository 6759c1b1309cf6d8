package terminology

import (
	"context"
	"strings"
	"sync"
	"theracare-service/internal/app/contracts"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/dto/requests"
	"theracare-service/internal/pkg/dto/responses"
	"theracare-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type terminologyUsecase struct {
	IMOClient contracts.IMOClient
	Log       *zap.Logger
}

var (
	terminologyUsecaseInstance contracts.TerminologyUsecase
	onceTerminologyUsecase     sync.Once
)

func NewTerminologyUsecase(imoClient contracts.IMOClient, logger *zap.Logger) contracts.TerminologyUsecase {
	onceTerminologyUsecase.Do(func() {
		terminologyUsecaseInstance = &terminologyUsecase{
			IMOClient: imoClient,
			Log:       logger,
		}
	})
	return terminologyUsecaseInstance
}

func (uc *terminologyUsecase) Search(ctx context.Context, request *requests.TerminologySearch) (json.RawMessage, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("terminologyUsecase.Search called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	text := strings.TrimSpace(request.Text)
	if text == "" {
		return nil, exceptions.ErrMissingText(nil)
	}
	domain := strings.TrimSpace(request.Domain)
	if domain == "" {
		domain = constvars.IMODefaultDomain
	}

	body, err := uc.IMOClient.CoreSearch(ctx, text, domain)
	if err != nil {
		return nil, err
	}

	items := gjson.GetBytes(body, constvars.IMOSearchResponseItems)
	if !items.IsArray() {
		uc.Log.Warn("terminologyUsecase.Search response without items",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return json.RawMessage(`[]`), nil
	}

	uc.Log.Info("terminologyUsecase.Search succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingTotalCountKey, len(items.Array())),
	)
	return json.RawMessage(items.Raw), nil
}

// Tokenize extracts the medical entities of a free text together with their
// codes per code system.
func (uc *terminologyUsecase) Tokenize(ctx context.Context, request *requests.Tokenize) ([]responses.TokenizedEntity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("terminologyUsecase.Tokenize called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	text := strings.TrimSpace(request.Text)
	if text == "" {
		return nil, exceptions.ErrMissingText(nil)
	}

	body, err := uc.IMOClient.Tokenize(ctx, text)
	if err != nil {
		return nil, err
	}

	entities := []responses.TokenizedEntity{}
	for _, entity := range gjson.GetBytes(body, "entities").Array() {
		semantic := entity.Get("semantic").String()
		if !constvars.IMOValidSemantics[semantic] {
			continue
		}
		entities = append(entities, responses.TokenizedEntity{
			Text:         entity.Get("text").String(),
			SemanticType: semantic,
			Assertion:    entity.Get("assertion").String(),
			Codes:        mapCodemaps(entity.Get("codemaps")),
		})
	}

	uc.Log.Info("terminologyUsecase.Tokenize succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingEntriesCountKey, len(entities)),
	)
	return entities, nil
}

func mapCodemaps(codemaps gjson.Result) map[string]string {
	codes := map[string]string{}
	codemaps.ForEach(func(system, value gjson.Result) bool {
		var code string
		switch system.String() {
		case constvars.IMOCodeSystemIMO:
			code = value.Get("lexical_code").String()
		case constvars.IMOCodeSystemRxNorm:
			code = value.Get("codes.0.rxnorm_code").String()
		default:
			code = value.Get("codes.0.code").String()
		}
		if code != "" {
			codes[system.String()] = code
		}
		return true
	})
	return codes
}
