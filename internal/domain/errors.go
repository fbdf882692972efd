package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation      ErrKind = "validation"      // 400
	KindUnauthenticated ErrKind = "unauthenticated" // 401 (credential missing/malformed)
	KindForbidden       ErrKind = "forbidden"       // 403 (credential present but invalid/stale)
	KindConflict        ErrKind = "conflict"        // 409
	KindRateLimited     ErrKind = "rate_limited"    // 429
	KindNotImplemented  ErrKind = "not_implemented" // 501
	KindInternal        ErrKind = "internal"        // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "Invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return New(KindValidation, "missing_field", fmt.Sprintf("%s is required", field))
}

func ErrInvalidField(field, reason string) *Error {
	return New(KindValidation, "invalid_field", fmt.Sprintf("%s is invalid: %s", field, reason))
}

func ErrWeakPassword(reason string) *Error {
	return New(KindValidation, "weak_password", "Password does not meet requirements: "+reason)
}

// ErrUserNotFound is the login response for an unknown username.
// Kept distinct from ErrInvalidCredentials because the frontend renders
// the exact message; both answer 400.
func ErrUserNotFound() *Error {
	return New(KindValidation, "user_not_found", "User not found")
}

func ErrInvalidCredentials() *Error {
	return New(KindValidation, "invalid_credentials", "Invalid credentials")
}

func ErrResetCodeInvalid() *Error {
	return New(KindValidation, "reset_code_invalid", "Invalid or expired reset code")
}

// ----------------------
// Unauthenticated (401)
// ----------------------

func ErrTokenMissing() *Error {
	return New(KindUnauthenticated, "token_missing", "No token provided")
}

func ErrMalformedAuthHeader() *Error {
	return New(KindUnauthenticated, "malformed_auth_header", "Authorization header must be of the form Bearer <token>")
}

// ----------------------
// Forbidden (403)
// ----------------------

func ErrTokenInvalid() *Error {
	return New(KindForbidden, "token_invalid", "Invalid token")
}

func ErrTokenExpired() *Error {
	return New(KindForbidden, "token_expired", "Token is expired")
}

// ----------------------
// Conflict (409)
// ----------------------

func ErrUserAlreadyExists() *Error {
	return New(KindConflict, "user_already_exists", "User already exists")
}

// ----------------------
// Rate limit (429)
// ----------------------

func ErrRateLimited(scope string) *Error {
	return Wrap(KindRateLimited, "rate_limited", "Too many requests", fmt.Errorf("scope %s", scope))
}

// ----------------------
// Not implemented (501)
// ----------------------

func ErrChatUnavailable() *Error {
	return New(KindNotImplemented, "chat_unavailable", "AI tutor is not available")
}

// ----------------------
// Internal (500)
// ----------------------

func ErrStoreUnavailable(cause error) *Error {
	return Wrap(KindInternal, "store_unavailable", "Server error. Please try again.", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "Server error. Please try again.", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "Server error. Please try again.", cause)
}

func ErrRandomFailed(cause error) *Error {
	return Wrap(KindInternal, "random_failed", "Server error. Please try again.", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "Server error. Please try again.", cause)
}
