// errors/http_errors.go
package errors

import "errors"

var (
	ErrInternalServer   = errors.New("internal server error")
	ErrInvalidQuery     = errors.New("invalid query parameters")
	ErrRateLimitFailure = errors.New("rate limiting failed")
)
