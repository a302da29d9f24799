package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// identifierRegex - допустимое имя схемы PostgreSQL без кавычек.
// identifierRegex is a plain, unquoted PostgreSQL identifier.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// IsValidIdentifier проверяет, что строку можно безопасно подставить в SQL как имя схемы.
func IsValidIdentifier(name string) bool {
	return identifierRegex.MatchString(name)
}

// ParseOptionalID разбирает идентификатор из query-параметра.
// Пустая строка означает отсутствие значения (nil, nil).
// ParseOptionalID parses an identifier taken from a query parameter.
// An empty string means "not supplied" and yields (nil, nil).
func ParseOptionalID(name, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &id, nil
}
