// Package handlers defines the machine-readable error codes of the API.
//
// Every error response carries one of these codes next to the HTTP status.
// Clients branch on the code; the message is for humans. Two conflict codes
// are specific so that clients can tell "you already declared" (adopt the
// server state) from "a parallel toggle won" (safe to retry).
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "already_declared",
//	  "message": "already declared for this date"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeAlreadyDeclared  = "already_declared"
	ErrCodeReactionConflict = "reaction_conflict"
)
