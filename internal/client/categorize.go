package client

import (
	"context"
	"errors"
	"net"
)

// ErrorCategory is a stable label for error classification in metrics.
type ErrorCategory string

// Error category constants used as the forecastApiErrorsTotal label.
const (
	ErrorCategoryTimeout       ErrorCategory = "timeout"
	ErrorCategoryCanceled      ErrorCategory = "canceled"
	ErrorCategoryTransport     ErrorCategory = "transport"
	ErrorCategoryInvalidAPIKey ErrorCategory = "invalid_api_key"
	ErrorCategoryCityNotFound  ErrorCategory = "city_not_found"
	ErrorCategoryRateLimited   ErrorCategory = "rate_limited"
	ErrorCategoryUpstream5xx   ErrorCategory = "upstream_5xx"
	ErrorCategoryRejected      ErrorCategory = "rejected"
	ErrorCategoryDecode        ErrorCategory = "decode"
	ErrorCategoryEmpty         ErrorCategory = "empty"
	ErrorCategoryUnknown       ErrorCategory = "unknown"
)

// CategorizeError maps an error returned by GetForecast to a stable ErrorCategory.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCategoryTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ErrorCategoryCanceled
	}
	// http.Client.Timeout surfaces as a net.Error rather than DeadlineExceeded.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorCategoryTimeout
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case errors.Is(err, ErrInvalidAPIKey):
			return ErrorCategoryInvalidAPIKey
		case errors.Is(err, ErrCityNotFound):
			return ErrorCategoryCityNotFound
		case statusErr.Code == 429:
			return ErrorCategoryRateLimited
		case statusErr.Code >= 500:
			return ErrorCategoryUpstream5xx
		default:
			return ErrorCategoryRejected
		}
	}

	if errors.Is(err, ErrDecode) {
		return ErrorCategoryDecode
	}
	if errors.Is(err, ErrEmptyPayload) {
		return ErrorCategoryEmpty
	}
	if errors.Is(err, ErrTransport) {
		return ErrorCategoryTransport
	}

	return ErrorCategoryUnknown
}
