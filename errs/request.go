package errs

import (
	"errors"
	"net/http"
)

// Authentication & Authorization Errors
var (
	ErrMissingToken = errors.New("missing access token")
	ErrInvalidToken = errors.New("invalid access token")
	ErrTokenExpired = errors.New("token expired")
)

const invalidTokenMessage = "Forbidden: Invalid or expired token"

// NewMissingTokenError is returned when the Authorization header is absent or
// not of the form "Bearer <token>".
func NewMissingTokenError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        wrapSentinel("Unauthorized: Token missing", ErrMissingToken, ErrUnauthorized),
		Field:      "authorization",
	}
}

func NewInvalidTokenError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        wrapSentinel(invalidTokenMessage, ErrInvalidToken, ErrForbidden),
		Field:      "authorization",
		Cause:      cause,
	}
}

// NewExpiredTokenError answers exactly like NewInvalidTokenError but also
// matches IsTokenExpiredError.
func NewExpiredTokenError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        wrapSentinel(invalidTokenMessage, ErrTokenExpired, ErrInvalidToken, ErrForbidden),
		Field:      "authorization",
		Cause:      cause,
	}
}

func IsMissingTokenError(err error) bool {
	return errors.Is(err, ErrMissingToken)
}

func IsInvalidTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken)
}

func IsTokenExpiredError(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}
