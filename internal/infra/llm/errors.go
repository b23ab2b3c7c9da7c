package llm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/matiasleandrokruk/inferlab/internal/infra/config"
)

// Outcome labels used for events and metrics.
const (
	OutcomeOK                = "ok"
	OutcomeTransportError    = "transport_error"
	OutcomeMalformedResponse = "malformed_response"
	OutcomeNetworkError      = "network_error"
	OutcomeInvalidRequest    = "invalid_request"
)

const maxErrorBody = 512

// TransportError is returned when the endpoint answers with a non-2xx status.
type TransportError struct {
	StatusCode int
	Status     string // reason phrase as sent by the server, e.g. "500 Internal Server Error"
	Body       string // first bytes of the body, may be empty or non-JSON
}

func (e *TransportError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return "inference transport error: status " + status
}

// MalformedResponseError is returned when a 2xx body is not the expected
// envelope or carries no response text.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed inference response: %s: %v", e.Reason, e.Err)
	}
	return "malformed inference response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// NetworkError is returned when the request could not complete at all
// (DNS, refused connection, timeout, body read failure).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("inference network error: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Outcome classifies err into one of the Outcome* labels.
func Outcome(err error) string {
	var (
		transportErr *TransportError
		malformedErr *MalformedResponseError
		networkErr   *NetworkError
	)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &transportErr):
		return OutcomeTransportError
	case errors.As(err, &malformedErr):
		return OutcomeMalformedResponse
	case errors.As(err, &networkErr):
		return OutcomeNetworkError
	case errors.Is(err, config.ErrConfiguration):
		return OutcomeInvalidRequest
	default:
		return OutcomeNetworkError
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
