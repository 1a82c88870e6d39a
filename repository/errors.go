package repository

import (
	"database/sql"
	"strings"

	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-errors"
	bunrepo "github.com/goliatone/go-repository-bun"
	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const pgUniqueViolation = "23505"

// mapError normalizes driver errors into the categories the services
// check for: not found, duplicate record and internal.
func mapError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}

	if bunrepo.IsRecordNotFound(err) || errors.Is(err, sql.ErrNoRows) || errors.Is(err, mongo.ErrNoDocuments) {
		return devconnect.NewRecordNotFound(notFoundMsg)
	}

	// updates by primary key report a missing row as an affected count mismatch
	if bunrepo.IsSQLExpectedCountViolation(err) {
		return devconnect.NewRecordNotFound(notFoundMsg)
	}

	if bunrepo.IsDuplicatedKey(err) || isUniqueViolation(err) {
		return devconnect.NewDuplicateRecord(err, "duplicate record")
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr
	}

	return errors.Wrap(err, errors.CategoryInternal, "database error")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	if mongo.IsDuplicateKeyError(err) {
		return true
	}

	// sqlite reports constraint failures by message with both cgo and pure
	// Go drivers
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
