package repository

import (
	"errors"
	"fmt"
)

// PersistenceError reports a statement that could not be prepared or executed.
type PersistenceError struct {
	Op string
	// Code is the driver's diagnostic code when one is available
	// (SQLite result code, MySQL error number, PostgreSQL SQLSTATE).
	Code       string
	Constraint bool
	Err        error
}

func (e *PersistenceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("failed to %s: %v (code %s)", e.Op, e.Err, e.Code)
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func IsPersistenceError(err error) bool {
	var perr *PersistenceError
	return errors.As(err, &perr)
}

func IsConstraintViolation(err error) bool {
	var perr *PersistenceError
	return errors.As(err, &perr) && perr.Constraint
}
