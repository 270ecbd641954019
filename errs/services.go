package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// External research-platform errors
var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrInvalidAPIKey      = errors.New("invalid API key")
	ErrConfigMissing      = errors.New("configuration missing")
)

// NewServiceError wraps a failed call to an external research platform.
// These are fatal for the operation that issued them.
func NewServiceError(service, operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrServiceUnavailable,
		Details:    fmt.Sprintf("%s: failed to %s", service, operation),
		Cause:      cause,
	}
}

// NewServiceRejectedError marks a credential rejection by an external
// platform (401/403 from the remote side).
func NewServiceRejectedError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrInvalidAPIKey,
		Details:    fmt.Sprintf("%s rejected the configured API token", service),
	}
}

// NewConfigurationError reports missing or inactive external-service
// configuration. Raised before any network call is attempted.
func NewConfigurationError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrConfigMissing,
		Details:    message,
	}
}

func IsServiceUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

func IsConfigMissing(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
