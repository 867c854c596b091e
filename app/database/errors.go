package database

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ValidationError reports a write rejected at the store boundary,
// either by an explicit range check or by a schema constraint.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Msg)
	}
	return "validation failed: " + e.Msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// StorageError reports a driver or connection level failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is a storage failure.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// wrapErr classifies a driver error. Constraint violations become
// validation errors, everything else is a storage fault.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return &ValidationError{Msg: se.Error(), Err: err}
	}
	return &StorageError{Op: op, Err: err}
}
