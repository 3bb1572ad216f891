package errors

import (
	"errors"
	"fmt"
)

// Code classifies a content read failure.
type Code string

const (
	CodeAccessDenied   Code = "ACCESS_DENIED"
	CodeNotFound       Code = "NOT_FOUND"
	CodeIO             Code = "IO_ERROR"
	CodeInvalidContent Code = "INVALID_CONTENT"
)

// ContentError is returned by the document reader. Path is the
// content-root-relative path that was requested.
type ContentError struct {
	Code Code
	Path string
	Err  error
}

func (e *ContentError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Path)
	switch e.Code {
	case CodeAccessDenied:
		msg += " is not in the content allowlist"
	case CodeNotFound:
		msg += " does not exist"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ContentError) Unwrap() error {
	return e.Err
}

func NewAccessDenied(path string) *ContentError {
	return &ContentError{Code: CodeAccessDenied, Path: path}
}

func NewNotFound(path string, err error) *ContentError {
	return &ContentError{Code: CodeNotFound, Path: path, Err: err}
}

func NewIOError(path string, err error) *ContentError {
	return &ContentError{Code: CodeIO, Path: path, Err: err}
}

func NewInvalidContent(path string, err error) *ContentError {
	return &ContentError{Code: CodeInvalidContent, Path: path, Err: err}
}

// Is reports whether err carries a ContentError with the given code.
func Is(err error, code Code) bool {
	var ce *ContentError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// GetCode returns the code of the first ContentError in err's chain, or "".
func GetCode(err error) Code {
	var ce *ContentError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
