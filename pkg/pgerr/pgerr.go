package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые сервис обрабатывает отдельно
const (
	CodeUniqueViolation      pq.ErrorCode = "23505"
	CodeForeignKeyViolation  pq.ErrorCode = "23503"
	CodeExclusionViolation   pq.ErrorCode = "23P01"
	CodeSerializationFailure pq.ErrorCode = "40001"
	CodeDeadlockDetected     pq.ErrorCode = "40P01"
)

// Code возвращает код ошибки PostgreSQL из цепочки err
func Code(err error) (pq.ErrorCode, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, true
	}
	return "", false
}

func IsUniqueViolation(err error) bool {
	return hasCode(err, CodeUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasCode(err, CodeForeignKeyViolation)
}

// IsExclusionViolation срабатывает на EXCLUDE constraint (пересечение интервалов)
func IsExclusionViolation(err error) bool {
	return hasCode(err, CodeExclusionViolation)
}

// IsSerializationFailure срабатывает, когда конкурирующая SERIALIZABLE транзакция
// изменила прочитанные данные или случился deadlock
func IsSerializationFailure(err error) bool {
	return hasCode(err, CodeSerializationFailure) || hasCode(err, CodeDeadlockDetected)
}

func hasCode(err error, code pq.ErrorCode) bool {
	c, ok := Code(err)
	return ok && c == code
}
