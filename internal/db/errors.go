package db

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// describePQError добавляет к ошибке PostgreSQL код и ограничение, если они есть.
// Исходная ошибка остаётся доступной через errors.As.
func describePQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	if pqErr.Constraint != "" {
		return fmt.Errorf("postgres %s (%s, constraint %s): %w", pqErr.Code, pqErr.Code.Name(), pqErr.Constraint, err)
	}
	return fmt.Errorf("postgres %s (%s): %w", pqErr.Code, pqErr.Code.Name(), err)
}

// IsConstraintViolation сообщает, нарушено ли ограничение целостности (класс 23).
func IsConstraintViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Class() == "23"
}
