package handlers

import "context"

// Event - входное событие функции: HTTP метод, заголовки, query-параметры и тело.
type Event struct {
	HTTPMethod            string            `json:"httpMethod"`
	Headers               map[string]string `json:"headers,omitempty"`
	QueryStringParameters map[string]string `json:"queryStringParameters,omitempty"`
	Body                  string            `json:"body,omitempty"`
}

// Response - ответ функции. Body уже сериализован в JSON.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// InvocationContext - данные о вызове. Используются только для логов.
type InvocationContext struct {
	RequestID    string
	FunctionName string
}

type invocationKey struct{}

// WithInvocation кладёт InvocationContext в контекст.
func WithInvocation(ctx context.Context, ic InvocationContext) context.Context {
	return context.WithValue(ctx, invocationKey{}, ic)
}

// InvocationFromContext достаёт InvocationContext из контекста.
func InvocationFromContext(ctx context.Context) (InvocationContext, bool) {
	ic, ok := ctx.Value(invocationKey{}).(InvocationContext)
	return ic, ok
}

func (e Event) query(name string) string {
	if e.QueryStringParameters == nil {
		return ""
	}
	return e.QueryStringParameters[name]
}
