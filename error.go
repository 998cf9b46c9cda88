package pathcount

import (
	"errors"
	"fmt"
)

// Error constants
const (
	ErrEmptyID = 1201

	ErrTooManyRequired = 1301
	ErrCanceled        = 1302

	ErrStorage = 1401
)

// MaxRequired is the largest number of distinct required nodes a constrained
// count supports (one bit each in the satisfaction mask).
const MaxRequired = 64

// Error is the type for path counting errors.
type Error struct {
	IsPathError  bool   `json:"isPathError"`
	ErrorNum     int    `json:"errorNum"`
	ErrorMessage string `json:"errorMessage"`
	Err          error  `json:"error"`
}

// NewError returns a new path counting error.
func NewError(num int, format string, args ...interface{}) Error {
	return Error{
		IsPathError:  true,
		ErrorNum:     num,
		ErrorMessage: fmt.Sprintf(format, args...),
	}
}

// Implements the error interface.
func (e Error) Error() string {
	if e.ErrorMessage != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.ErrorMessage, e.Err)
		}
		return e.ErrorMessage
	}
	if e.ErrorNum == ErrStorage {
		return fmt.Sprintf("Storage Error: %v", e.Err)
	}
	return fmt.Sprintf("Error: ErrorNum %d", e.ErrorNum)
}

// Unwrap supports unwrapping of errors.
func (e Error) Unwrap() error {
	return e.Err
}

// Is provides for correct comparison of path counting errors using the
// errors.Is() method (see: https://pkg.go.dev/errors).
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}
	return e.ErrorNum == t.ErrorNum && t.IsPathError
}

// IsErrorWithErrorNum returns true, if the given error is a path counting
// error with an error number equal to the given one.
func IsErrorWithErrorNum(err error, num int) bool {
	return errors.Is(err, NewError(num, ""))
}

// EmptyIDError creates a new error with an error number equal to ErrEmptyID.
// role names the offending argument (e.g. "source").
func EmptyIDError(role string) Error {
	return NewError(ErrEmptyID, "%s id is empty", role)
}

// IsEmptyIDError returns true, if the given error is a path counting error
// with an error number equal to ErrEmptyID.
func IsEmptyIDError(err error) bool {
	return IsErrorWithErrorNum(err, ErrEmptyID)
}

// TooManyRequiredError creates a new error with an error number equal to
// ErrTooManyRequired.
func TooManyRequiredError(n int) Error {
	return NewError(ErrTooManyRequired, "%d required nodes given, at most %d are supported", n, MaxRequired)
}

// IsTooManyRequiredError returns true, if the given error is a path counting
// error with an error number equal to ErrTooManyRequired.
func IsTooManyRequiredError(err error) bool {
	return IsErrorWithErrorNum(err, ErrTooManyRequired)
}

// CanceledError wraps the context error that stopped a search.
func CanceledError(cause error) Error {
	e := NewError(ErrCanceled, "search canceled")
	e.Err = cause
	return e
}

// IsCanceledError returns true, if the given error is a path counting error
// with an error number equal to ErrCanceled.
func IsCanceledError(err error) bool {
	return IsErrorWithErrorNum(err, ErrCanceled)
}

// StorageError wraps an error returned by a storage backend.
func StorageError(cause error, format string, args ...interface{}) Error {
	e := NewError(ErrStorage, format, args...)
	e.Err = cause
	return e
}

// IsStorageError returns true, if the given error is a path counting error
// with an error number equal to ErrStorage.
func IsStorageError(err error) bool {
	return IsErrorWithErrorNum(err, ErrStorage)
}
