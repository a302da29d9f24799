package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"chatapi/internal/handlers"
)

// maxBodyBytes - ограничение на размер тела запроса.
const maxBodyBytes = 1 << 20 // 1 MB

// FunctionHandler превращает HTTP запрос в handlers.Event, вызывает функцию
// и записывает handlers.Response. Ошибка функции превращается в 500.
func FunctionHandler(chat *handlers.ChatHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := eventFromRequest(w, r)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeResponse(w, handlers.Response{
					StatusCode: http.StatusRequestEntityTooLarge,
					Headers:    map[string]string{"Content-Type": "application/json"},
					Body:       `{"error":"request body too large"}`,
				})
				return
			}
			slog.Error("FunctionHandler: ошибка чтения тела запроса", "error", err)
			writeResponse(w, handlers.InternalErrorResponse())
			return
		}

		resp, err := chat.Handle(r.Context(), event)
		if err != nil {
			// Ошибка уже залогирована обработчиком, здесь отдаём общий ответ.
			writeResponse(w, handlers.InternalErrorResponse())
			return
		}
		writeResponse(w, resp)
	}
}

func eventFromRequest(w http.ResponseWriter, r *http.Request) (handlers.Event, error) {
	event := handlers.Event{
		HTTPMethod:            r.Method,
		Headers:               make(map[string]string, len(r.Header)),
		QueryStringParameters: make(map[string]string),
	}
	for name := range r.Header {
		event.Headers[name] = r.Header.Get(name)
	}
	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			event.QueryStringParameters[name] = values[0]
		}
	}

	if r.Body != nil {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			return handlers.Event{}, err
		}
		event.Body = string(body)
	}
	return event, nil
}

func writeResponse(w http.ResponseWriter, resp handlers.Response) {
	for name, value := range resp.Headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		if _, err := io.WriteString(w, resp.Body); err != nil {
			slog.Warn("writeResponse: ошибка записи ответа", "error", err)
		}
	}
}
