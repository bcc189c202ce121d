package freezer

import (
	"errors"
	"fmt"
)

// Error codes for the failure classes a run can hit.
const (
	CodeConfiguration = "CONFIGURATION"
	CodeAutomation    = "AUTOMATION"
	CodeConsistency   = "CONSISTENCY"
	CodeIO            = "IO"
)

// Error represents errors that can occur while freezing a deck.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfigurationError reports invalid input before any document is
// touched.
func NewConfigurationError(message string, err error) *Error {
	return &Error{Code: CodeConfiguration, Message: message, Err: err}
}

// NewAutomationError reports a failed scripting operation. Automation
// failures are not retried; they are assumed non-transient within a run.
func NewAutomationError(op string, err error) *Error {
	return &Error{Code: CodeAutomation, Message: op + " failed", Err: err}
}

// NewConsistencyError reports a mismatch between the variants, such as the
// exported page count not matching the slide count.
func NewConsistencyError(message string) *Error {
	return &Error{Code: CodeConsistency, Message: message}
}

// NewIOError reports a filesystem failure.
func NewIOError(message string, err error) *Error {
	return &Error{Code: CodeIO, Message: message, Err: err}
}

// IsCode reports whether err is (or wraps) a freezer Error with the given
// code.
func IsCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
