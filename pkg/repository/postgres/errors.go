package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/artem13815/jobboard/pkg/apperr"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// storeErr переводит ошибки драйвера в общую таксономию: нет строки -> NotFound с
// данным сообщением, нарушение уникальности -> Conflict, прочее -> Transient.
func storeErr(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperr.NotFound(notFound)
	case isUniqueViolation(err):
		return &apperr.Error{Kind: apperr.KindConflict, Msg: "already exists", Err: err}
	default:
		return apperr.Transient(err)
	}
}
