package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
	CheckViolation      = "23514"
)

// Is проверяет, что err - ошибка PostgreSQL с указанным кодом
func Is(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}

// IsUniqueViolation проверяет нарушение уникального ограничения
func IsUniqueViolation(err error) bool {
	return Is(err, UniqueViolation)
}

// IsForeignKeyViolation проверяет нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return Is(err, ForeignKeyViolation)
}
