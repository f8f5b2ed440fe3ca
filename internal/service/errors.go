package service

import "errors"

var (
	ErrNoFile       = errors.New("document has no file")
	ErrForbidden    = errors.New("not the author of this document")
	ErrAuthRequired = errors.New("login required")
)

// ValidationError is a form problem detected before any backend call.
// Message is shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// UserMessage returns the text to display for a validation error, or "" for any other error.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return ""
}
