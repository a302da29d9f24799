package handlers

import (
	"encoding/json"
	"net/http"

	"chatapi/internal/constants"
)

func jsonHeaders() map[string]string {
	return map[string]string{
		constants.HEADER_CONTENT_TYPE: constants.CONTENT_TYPE_JSON,
		constants.HEADER_ALLOW_ORIGIN: constants.CORS_ALLOW_ORIGIN,
	}
}

// preflightResponse - ответ на OPTIONS: 200, заголовки CORS, пустое тело.
func preflightResponse() Response {
	return Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			constants.HEADER_ALLOW_ORIGIN:  constants.CORS_ALLOW_ORIGIN,
			constants.HEADER_ALLOW_METHODS: constants.CORS_ALLOW_METHODS,
			constants.HEADER_ALLOW_HEADERS: constants.CORS_ALLOW_HEADERS,
			constants.HEADER_MAX_AGE:       constants.CORS_MAX_AGE,
		},
		Body: "",
	}
}

// jsonResponse сериализует payload в тело ответа.
func jsonResponse(status int, payload interface{}) (Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, err
	}
	return Response{StatusCode: status, Headers: jsonHeaders(), Body: string(body)}, nil
}

// errorResponse - ответ вида {"error": "..."}.
func errorResponse(status int, message string) Response {
	body, _ := json.Marshal(map[string]string{"error": message})
	return Response{StatusCode: status, Headers: jsonHeaders(), Body: string(body)}
}

// InternalErrorResponse - общий ответ для ошибок инфраструктуры,
// используется хостом функции.
func InternalErrorResponse() Response {
	return errorResponse(http.StatusInternalServerError, constants.ERR_INTERNAL)
}
