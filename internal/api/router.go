package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"chatapi/internal/config"
	"chatapi/internal/constants"
	"chatapi/internal/handlers"
)

// Pinger - то, что умеет проверять доступность БД.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ApiDependencies содержит зависимости для обработчиков API.
type ApiDependencies struct {
	Config *config.Config
	Chat   *handlers.ChatHandler
	DB     Pinger
}

// SetupRoutes настраивает все маршруты для API.
func SetupRoutes(r chi.Router, deps ApiDependencies) {
	r.Get("/healthz", HealthHandler(deps.DB))

	r.Group(func(r chi.Router) {
		r.Use(InvocationMiddleware(deps.Config.FunctionName))
		r.Use(CallerMiddleware)

		// Все методы идут в одну функцию, она сама отвечает 405 на неподдерживаемые.
		r.HandleFunc("/api/chat", FunctionHandler(deps.Chat))
	})
}

// HealthHandler отвечает 200, если база данных доступна.
func HealthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set(constants.HEADER_CONTENT_TYPE, constants.CONTENT_TYPE_JSON)
		if db == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		if err := db.Ping(ctx); err != nil {
			slog.Warn("Health check: база данных недоступна", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}
}
