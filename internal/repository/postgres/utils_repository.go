package postgres

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/tour-microservice/internal/pkg/errors"
)

// Лимиты выборок
const (
	// DefaultQueryLimit - лимит по умолчанию для списков
	DefaultQueryLimit = 20
	// MaxQueryLimit - максимальный лимит для списков
	MaxQueryLimit = 100
)

// Коды ошибок PostgreSQL
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// pgErrorInfo достаёт код и constraint из ошибки pgx или lib/pq
func pgErrorInfo(err error) (code, constraint string, ok bool) {
	var pgxErr *pgconn.PgError
	if stderrors.As(err, &pgxErr) {
		return pgxErr.Code, pgxErr.ConstraintName, true
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint, true
	}
	return "", "", false
}

// mapError переводит ошибку драйвера в ошибку каталога
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}

	code, constraint, ok := pgErrorInfo(err)
	if ok {
		switch code {
		case pgUniqueViolation:
			return errors.ErrConflict.Wrap(err).WithDetails(map[string]interface{}{
				"constraint": constraint,
			})
		case pgForeignKeyViolation:
			return errors.ErrValidation.Wrap(err).WithDetails(map[string]interface{}{
				"constraint": constraint,
				"reason":     "referenced record does not exist",
			})
		}
	}

	return errors.ErrDatabaseError.Wrap(err)
}

// isForeignKeyViolation - удаление строки, на которую ещё ссылаются
func isForeignKeyViolation(err error) bool {
	code, _, ok := pgErrorInfo(err)
	return ok && code == pgForeignKeyViolation
}

// normalizeLimit приводит limit к диапазону (0, MaxQueryLimit]
func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultQueryLimit
	case limit > MaxQueryLimit:
		return MaxQueryLimit
	default:
		return limit
	}
}

// likePattern экранирует спецсимволы LIKE и оборачивает строку в %...%
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// placeholders возвращает "$from, $from+1, ..." для n аргументов
func placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(parts, ", ")
}
