package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tbourn/go-advent-calendar/internal/services"
)

// Error codes understood by the client. They mirror the server's envelope.
const (
	codeUnauthorized     = "unauthorized"
	codeAlreadyDeclared  = "already_declared"
	codeReactionConflict = "reaction_conflict"
	codeConflict         = "conflict"
	codeNotFound         = "not_found"
	codeBadRequest       = "bad_request"
)

// APIError is a non-2xx response. It unwraps to the matching service
// sentinel.
type APIError struct {
	Status    int
	Code      string
	Message   string
	RequestID string

	kind error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap returns the service sentinel for the response.
func (e *APIError) Unwrap() error { return e.kind }

func decodeError(status int, raw []byte) error {
	var env struct {
		RequestID string `json:"request_id"`
		Code      string `json:"code"`
		Message   string `json:"message"`
	}
	_ = json.Unmarshal(raw, &env)
	e := &APIError{Status: status, Code: env.Code, Message: env.Message, RequestID: env.RequestID}
	e.kind = sentinelFor(status, env.Code)
	return e
}

func sentinelFor(status int, code string) error {
	switch code {
	case codeAlreadyDeclared:
		return services.ErrAlreadyDeclared
	case codeReactionConflict:
		return services.ErrReactionConflict
	}
	switch {
	case status == http.StatusUnauthorized || code == codeUnauthorized:
		return services.ErrUnauthenticated
	case status == http.StatusConflict || code == codeConflict:
		return services.ErrDuplicateConflict
	case status == http.StatusNotFound || code == codeNotFound:
		return services.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity || code == codeBadRequest:
		return services.ErrValidationFailure
	default:
		return services.ErrStorageFailure
	}
}
