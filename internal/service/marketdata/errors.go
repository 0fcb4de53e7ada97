package marketdata

import (
	"errors"
	"fmt"
)

// GatewayError kinds. Handlers map these onto HTTP status codes.
const (
	KindInvalidTicker = "invalid_ticker"
	KindUnavailable   = "unavailable"
	KindRateLimited   = "rate_limited"
)

// GatewayError is the single error type the gateway returns to callers.
// Provider-specific failures are classified into a Kind before they escape
// this package.
type GatewayError struct {
	Kind    string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GatewayError) Unwrap() error { return e.Err }

func invalidTickerError(ticker string) *GatewayError {
	return &GatewayError{Kind: KindInvalidTicker, Message: fmt.Sprintf("invalid ticker %q", ticker)}
}

func unavailableError(ticker string, err error) *GatewayError {
	return &GatewayError{Kind: KindUnavailable, Message: fmt.Sprintf("no provider could serve %s", ticker), Err: err}
}

func rateLimitedError(ticker string, err error) *GatewayError {
	return &GatewayError{Kind: KindRateLimited, Message: fmt.Sprintf("providers rate limited for %s", ticker), Err: err}
}

// AsGatewayError extracts a *GatewayError from an error chain.
func AsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
