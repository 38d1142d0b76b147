package database

import (
	"errors"
	"net"

	"eli5-bot/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the application reacts to.
const (
	CodeUndefinedTable  = "42P01"
	CodeUniqueViolation = "23505"
)

// Translate maps driver failures onto the application error taxonomy.
// Errors it does not recognise are returned unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case CodeUndefinedTable:
			return apperror.Wrap(apperror.KindSchema, "expected table is missing: "+pgErr.Message, err)
		case CodeUniqueViolation:
			return apperror.Wrap(apperror.KindAlreadyExists, "record already exists", err)
		}
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return apperror.Wrap(apperror.KindConnectivity, "database unreachable", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperror.Wrap(apperror.KindConnectivity, "database unreachable", err)
	}

	return err
}
