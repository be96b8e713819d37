package errors

import (
	"context"
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the repos care about
const (
	sqlStateUniqueViolation  = "23505"
	sqlStateNotNullViolation = "23502"
	sqlStateCheckViolation   = "23514"
	sqlStateTruncation       = "22001"

	sqlStateSerialization = "40001"
	sqlStateDeadlock      = "40P01"
	sqlStateReadOnly      = "25006"
	sqlStateCannotConnect = "57P03"
	sqlStateAdminShutdown = "57P01"
)

// SQLState returns the postgres SQLSTATE carried by err, empty when there is none
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// StoreCode classifies a storage failure
// deadlines and server side unavailability are Unavailable, constraint failures keep their meaning
func StoreCode(err error) ErrorCode {
	if stderrs.Is(err, context.DeadlineExceeded) || stderrs.Is(err, context.Canceled) {
		return ErrorCodeUnavailable
	}
	switch SQLState(err) {
	case sqlStateUniqueViolation:
		return ErrorCodeDuplicateKey
	case sqlStateNotNullViolation, sqlStateCheckViolation:
		return ErrorCodeValidation
	case sqlStateTruncation:
		return ErrorCodeInvalidArgument
	case sqlStateReadOnly, sqlStateCannotConnect, sqlStateAdminShutdown:
		return ErrorCodeUnavailable
	case sqlStateSerialization, sqlStateDeadlock:
		return ErrorCodeDB
	}
	return ErrorCodeDB
}

// FromStore wraps a storage error with the code StoreCode picks, nil stays nil
func FromStore(err error, msg string) error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok && e.code != ErrorCodeUnknown {
		return Wrap(err, e.code, msg)
	}
	return Wrap(err, StoreCode(err), msg)
}
