package rest

import (
	"net/http"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"
)

const msgUnauthorized = "Unauthorized"

type AuthMiddleware struct {
	validator port.TokenValidatorPort
}

func NewAuthMiddleware(validator port.TokenValidatorPort) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// Authenticate пропускает запрос только с валидным "Bearer <jwt>".
// Заголовок Authorization не удаляется: его дальше пересылают во внешний AI-сервис.
func (am *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			WriteJSONError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		claims, err := am.validator.ValidateToken(r.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			WriteJSONError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		// user_id попадает во все логи запроса
		logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
			"user_id": claims.UserID.String(),
		})
		ctx := contextkeys.ContextWithLogger(r.Context(), logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
