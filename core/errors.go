package core

import (
	"errors"
	"fmt"
	"os"
)

// General error codes
const (
	NOERROR   int = 0
	EMISSING  int = 122 // resource does not exist
	EINVALID  int = 123 // validation failed
	EFORMAT   int = 124 // resource exists but cannot be decoded
	EINTERNAL int = 125 // internal error
	EANCHOR   int = 126 // anchor option not recognized
)

// Error kinds. Every coded error matches exactly one of them with errors.Is,
// selected by its error code.
var (
	ErrFontNotFound  = errors.New("font not found")
	ErrFontParse     = errors.New("font cannot be parsed")
	ErrUnknownAnchor = errors.New("unknown anchor option")
	ErrInvalidOption = errors.New("invalid option")
)

// codes lists the text and the error kind of every error code.
var codes = map[int]struct {
	text string
	kind error
}{
	NOERROR:   {"OK", nil},
	EMISSING:  {"not found", ErrFontNotFound},
	EINVALID:  {"invalid", ErrInvalidOption},
	EFORMAT:   {"bad format", ErrFontParse},
	EINTERNAL: {"internal error", nil},
	EANCHOR:   {"unknown anchor", ErrUnknownAnchor},
}

func errorText(ecode int) string {
	if c, ok := codes[ecode]; ok {
		return c.text
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.error)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

// Is lets errors.Is match a coded error against its error kind.
func (e coreError) Is(target error) bool {
	kind := codes[e.code].kind
	return kind != nil && target == kind
}

var _ AppError = coreError{}

// ErrorWithCode adds an error code to err's error chain.
// Unlike pkg/errors, ErrorWithCode will wrap nil error.
func ErrorWithCode(err error, code int) error {
	return WrapError(err, code, errorText(code))
}

// WrapError wraps an error in a core error, featuring an error code and
// a user message.
// If err is nil, an error denoting the code's text is wrapped.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, fmt.Sprintf(format, v...)}
}

// Code returns the error code of err, EINTERNAL for errors without a code
// and NOERROR for nil.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message of a coded error, or the text of
// its code otherwise. UserMessage(nil) is "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return WrapError(nil, code, format, v...)
}

// UserError prints an error to stderr, preferring the user message of
// coded errors.
func UserError(err error) {
	if e := AppError(nil); errors.As(err, &e) {
		fmt.Fprintf(os.Stderr, "[%d] %s\n", e.ErrorCode(), e.UserMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}
