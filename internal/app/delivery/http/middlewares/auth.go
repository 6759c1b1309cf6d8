package middlewares

import (
	"context"
	"net/http"
	"strings"
	"theracare-service/internal/pkg/constvars"
	"theracare-service/internal/pkg/exceptions"
	"theracare-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate resolves the bearer token into the redis session and stores
// it in the request context under CONTEXT_SESSION_DATA_KEY.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.AuthorizationBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.AuthorizationBearerPrefix))
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		sessionID, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			m.Log.Warn("Middlewares.Authenticate invalid token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		session, err := m.SessionService.GetSession(ctx, sessionID)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx = context.WithValue(ctx, constvars.CONTEXT_SESSION_DATA_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
