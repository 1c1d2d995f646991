// Package pgdb implements the domain repositories on Postgres via sqlx.
//
// The multi-step workflows (event registration, certificate issuance) run in
// transactions; uniqueness is enforced by DB constraints and capacity by a
// conditional update, so concurrent requests cannot over-fill an event or
// duplicate a row.
package pgdb

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// Postgres error codes of interest.
const (
	pqUniqueViolation = pq.ErrorCode("23505")
	pqCheckViolation  = pq.ErrorCode("23514")
)

func isUniqueViolation(err error) bool {
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}

func isCheckViolation(err error) bool {
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok {
		return pqErr.Code == pqCheckViolation
	}
	return false
}

func isNoRows(err error) bool {
	return errors.Cause(err) == sql.ErrNoRows
}
