package apperror

import "fmt"

// Error is an operational error: an anticipated failure that carries a
// user-facing message and an HTTP status code. Anything that is not an
// *Error is treated as an unexpected fault by the HTTP layer.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string { return e.Message }

// Status returns the envelope status word: "fail" for 4xx, "error" otherwise.
func (e *Error) Status() string {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return "fail"
	}
	return "error"
}

func New(message string, statusCode int) *Error {
	return &Error{Message: message, StatusCode: statusCode}
}

func Newf(statusCode int, format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), StatusCode: statusCode}
}
