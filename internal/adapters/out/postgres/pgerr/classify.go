// Package pgerr maps PostgreSQL failures onto the workflow error taxonomy.
package pgerr

import (
	"context"
	"errors"
	"net"
	"strings"

	"dispatch/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	lockNotAvailable     = "55P03"
	adminShutdown        = "57P01"
	crashShutdown        = "57P02"
	cannotConnectNow     = "57P03"
)

// Classify translates err for callers that only understand errs sentinels.
// Unique violations become ErrAlreadyBooked, serialization failures and
// deadlocks ErrConcurrentModification, connectivity loss and timeouts
// ErrStorageUnavailable. Anything else is returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolation:
			return errs.NewWorkflowErrorWithCause(errs.ErrAlreadyBooked, duplicateReason(pgErr), err)
		case pgErr.Code == serializationFailure, pgErr.Code == deadlockDetected, pgErr.Code == lockNotAvailable:
			return errs.NewWorkflowErrorWithCause(
				errs.ErrConcurrentModification,
				"a concurrent transaction touched the same rows, retry",
				err,
			)
		case strings.HasPrefix(pgErr.Code, "08"),
			strings.HasPrefix(pgErr.Code, "53"),
			pgErr.Code == adminShutdown,
			pgErr.Code == crashShutdown,
			pgErr.Code == cannotConnectNow:
			return errs.NewStorageUnavailableError(err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connectErr),
		errors.As(err, &netErr),
		pgconn.Timeout(err),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, gorm.ErrInvalidDB):
		return errs.NewStorageUnavailableError(err)
	}

	return err
}

func duplicateReason(pgErr *pgconn.PgError) string {
	if pgErr.Detail != "" {
		return pgErr.Detail
	}
	return "duplicate value violates " + pgErr.ConstraintName
}
