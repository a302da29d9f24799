// Файл: internal/api/middleware.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"chatapi/internal/constants"
	"chatapi/internal/handlers"
)

// InvocationMiddleware присваивает каждому вызову идентификатор и кладёт
// handlers.InvocationContext в контекст запроса.
func InvocationMiddleware(functionName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.HEADER_REQUEST_ID)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}
			w.Header().Set(constants.HEADER_REQUEST_ID, requestID)

			ctx := handlers.WithInvocation(r.Context(), handlers.InvocationContext{
				RequestID:    requestID,
				FunctionName: functionName,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerMiddleware только логирует заголовки X-User-Id и X-Auth-Token.
// Проверка авторизации выполняется вне этого сервиса.
func CallerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodOptions {
			userID := r.Header.Get(constants.HEADER_USER_ID)
			hasToken := r.Header.Get(constants.HEADER_AUTH_TOKEN) != ""
			if ic, ok := handlers.InvocationFromContext(r.Context()); ok {
				slog.Debug("Входящий вызов",
					"request_id", ic.RequestID,
					"user_id_header", userID,
					"has_auth_token", hasToken)
			}
		}
		next.ServeHTTP(w, r)
	})
}
