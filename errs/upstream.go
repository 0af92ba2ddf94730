package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Third-Party Service Errors
var (
	ErrUpstream           = errors.New("upstream service failed")
	ErrConfigMissing      = errors.New("configuration missing")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// NewUpstreamError wraps a failure of an external collaborator (object store,
// mail provider). The cause's message is surfaced verbatim.
func NewUpstreamError(service string, cause error) *ApiErr {
	message := fmt.Sprintf("%s request failed", service)
	if cause != nil {
		message = cause.Error()
	}
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        wrapSentinel(message, ErrUpstream),
		Details:    fmt.Sprintf("%s request failed", service),
		Cause:      cause,
	}
}

func NewConfigError(configName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        wrapSentinel(fmt.Sprintf("%s is not configured", configName), ErrConfigMissing, ErrServiceUnavailable),
		Field:      configName,
	}
}

func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstream)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
