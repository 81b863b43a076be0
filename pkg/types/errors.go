package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a goroots error code.
type ErrorCode string

// Error codes. The leading letter selects the ErrorKind.
const (
	// S0xxx: Parse errors
	ErrUnexpectedToken   ErrorCode = "S0101"
	ErrUnbalancedParens  ErrorCode = "S0102"
	ErrUnknownIdentifier ErrorCode = "S0103"
	ErrEmptyExpression   ErrorCode = "S0104"

	// D0xxx: Domain errors
	ErrUndefined ErrorCode = "D0101"

	// R0xxx: Solve errors
	ErrSameSign       ErrorCode = "R0101"
	ErrDivisionByZero ErrorCode = "R0102"
	ErrDomain         ErrorCode = "R0103"

	// V0xxx: Input errors
	ErrInvalidInput ErrorCode = "V0101"
)

// ErrorKind classifies an error for callers deciding how to report it.
type ErrorKind string

const (
	KindParse   ErrorKind = "parse"
	KindDomain  ErrorKind = "domain"
	KindSolve   ErrorKind = "solve"
	KindInput   ErrorKind = "input"
	KindUnknown ErrorKind = "unknown"
)

// Error represents a structured goroots error.
type Error struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	Position int       `json:"position"`
	Token    string    `json:"token,omitempty"`
	Field    string    `json:"field,omitempty"`   // input field the error refers to
	Example  string    `json:"example,omitempty"` // corrected usage
	X        float64   `json:"x,omitempty"`       // point at which a domain error occurred
	Err      error     `json:"-"`
}

// NewError creates a new error. Use a negative position when the error does
// not refer to a location in expression text.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Kind returns the class of the error derived from its code.
func (e *Error) Kind() ErrorKind {
	if len(e.Code) == 0 {
		return KindUnknown
	}
	switch e.Code[0] {
	case 'S':
		return KindParse
	case 'D':
		return KindDomain
	case 'R':
		return KindSolve
	case 'V':
		return KindInput
	default:
		return KindUnknown
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// WithField names the input field the error refers to.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithExample attaches an example of corrected usage.
func (e *Error) WithExample(example string) *Error {
	e.Example = example
	return e
}

// Is reports whether target is an *Error with the same code, so that
// errors.Is(err, &Error{Code: ErrSameSign}) matches through wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// HasCode reports whether any *Error in err's tree carries code.
func HasCode(err error, code ErrorCode) bool {
	return errors.Is(err, &Error{Code: code})
}

// AsError returns the first *Error in err's chain, or nil.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
