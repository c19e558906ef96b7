package errors

import (
	stderrors "errors"

	"github.com/louisbranch/crapshoot/internal/platform/errors/i18n"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = i18n.BaseLocale

// HandleError converts domain errors to gRPC status for client responses.
// The user-facing message is rendered for locale, defaulting to en-US.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}
	if locale == "" {
		locale = DefaultLocale
	}

	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.ToGRPCStatus(locale)
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, "an unexpected error occurred")
}

// IsCode reports whether err carries code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// MetadataOf returns the metadata of the first *Error in err's chain.
func MetadataOf(err error) map[string]string {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Metadata
	}
	return nil
}
