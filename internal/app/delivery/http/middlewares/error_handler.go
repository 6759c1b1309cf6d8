package middlewares

import (
	"errors"
	"net/http"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/utils"

	"go.uber.org/zap"
)

func (m *Middlewares) ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				var err error
				switch x := rec.(type) {
				case string:
					err = errors.New(x)
				case error:
					err = x
				default:
					err = errors.New("unknown error")
				}

				requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
				m.Log.Error("Middlewares.ErrorHandler recovered from panic",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingEndpointKey, r.URL.Path),
					zap.Error(err),
				)
				utils.BuildErrorResponse(m.Log, w, err)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
