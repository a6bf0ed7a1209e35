package errors

import (
	stderrors "errors"

	"github.com/louisbranch/vttbridge/internal/platform/errors/i18n"
)

// Error is a coded failure. Message and Cause are for logs; Code and
// Metadata select and fill the localized text shown to users.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

func (e *Error) Error() string {
	switch {
	case e.Cause == nil && e.Message == "":
		return string(e.Code)
	case e.Cause == nil:
		return e.Message
	case e.Message == "":
		return e.Cause.Error()
	default:
		return e.Message + ": " + e.Cause.Error()
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same code, so errors.Is(err, &Error{Code: c})
// finds a code anywhere in the chain.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// New returns an error with a code and log message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata returns an error whose metadata fills the localized template.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap returns a coded error around cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// WrapWithMetadata combines Wrap and WithMetadata.
func WrapWithMetadata(code Code, message string, metadata map[string]string, cause error) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata, Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or
// CodeUnknown.
func GetCode(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// HasCode reports whether err carries code anywhere in its chain.
func HasCode(err error, code Code) bool {
	return stderrors.Is(err, &Error{Code: code})
}

// Localize renders err for users in locale. Errors without a code, or with
// a code the catalog does not know, fall back to their own text.
func Localize(err error, locale string) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !stderrors.As(err, &e) {
		return err.Error()
	}
	text, ok := i18n.Lookup(locale, string(e.Code), e.Metadata)
	if !ok {
		return err.Error()
	}
	return text
}
