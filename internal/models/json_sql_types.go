package models

import (
	"database/sql"
	"encoding/json"
)

// NullString - обертка для sql.NullString для правильной обработки JSON.
type NullString struct {
	sql.NullString
}

// NewNullString возвращает валидную строку или NULL для nil.
func NewNullString(s *string) NullString {
	if s == nil {
		return NullString{}
	}
	return NullString{sql.NullString{String: *s, Valid: true}}
}

// MarshalJSON реализует интерфейс json.Marshaler для NullString.
func (ns NullString) MarshalJSON() ([]byte, error) {
	if !ns.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ns.String)
}

// NullInt64 - обертка для sql.NullInt64 для правильной обработки JSON.
type NullInt64 struct {
	sql.NullInt64
}

// NewNullInt64 возвращает валидное число или NULL для nil.
func NewNullInt64(v *int64) NullInt64 {
	if v == nil {
		return NullInt64{}
	}
	return NullInt64{sql.NullInt64{Int64: *v, Valid: true}}
}

// MarshalJSON реализует интерфейс json.Marshaler для NullInt64.
func (ni NullInt64) MarshalJSON() ([]byte, error) {
	if !ni.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ni.Int64)
}
