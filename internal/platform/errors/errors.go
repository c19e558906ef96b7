package errors

import (
	stderrors "errors"

	"github.com/louisbranch/crapshoot/internal/platform/errors/i18n"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// Domain is the error domain reported in gRPC ErrorInfo details.
const Domain = "crapshoot.louisbranch.dev"

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs/telemetry)
	Metadata map[string]string // Additional context for templating
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil && e.Message == "" {
		return e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata creates a domain error with metadata for i18n templating.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}

// ClassOf returns the class of err's code.
func ClassOf(err error) Class {
	return CodeOf(err).Class()
}

// ToGRPCStatus converts the error to a gRPC status carrying ErrorInfo and a
// LocalizedMessage rendered from the catalog for locale. The status message
// keeps the internal message for logs.
func (e *Error) ToGRPCStatus(locale string) error {
	grpcCode := e.Code.GRPCCode()
	st := status.New(grpcCode, e.Message)

	catalog := i18n.GetCatalog(locale)
	metadata := make(map[string]string, len(e.Metadata)+1)
	for key, value := range e.Metadata {
		metadata[key] = value
	}
	metadata["class"] = string(e.Code.Class())

	detailed, err := st.WithDetails(
		&errdetails.ErrorInfo{
			Reason:   string(e.Code),
			Domain:   Domain,
			Metadata: metadata,
		},
		&errdetails.LocalizedMessage{
			Locale:  catalog.Locale(),
			Message: catalog.Format(string(e.Code), e.Metadata),
		},
	)
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
