package apperror

import "fmt"

// AppError carries an HTTP status code alongside a user-facing message so
// transport handlers can map domain failures without per-error switches.
type AppError struct {
	Code    int    // HTTP status code (e.g., 400, 404, 409)
	Message string // User-facing error message
	Err     error  // Underlying error, if any (never exposed to the client)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf creates an AppError with a formatted message.
func Newf(code int, format string, args ...any) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates an AppError around an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
