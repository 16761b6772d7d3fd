package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Authentication-specific error types
const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeAccountSuspended   ErrorType = "account_suspended"
	ErrorTypeAccountWithdrawn   ErrorType = "account_withdrawn"
	ErrorTypeTokenExpired       ErrorType = "token_expired"
	ErrorTypeTokenMalformed     ErrorType = "token_malformed"
	ErrorTypeMissingTokens      ErrorType = "missing_tokens"
	ErrorTypeDataConsistency    ErrorType = "data_consistency"
)

// Token class names used in expiry errors and the reissue hint header.
const (
	TokenClassAccess  = "AccessToken"
	TokenClassRefresh = "RefreshToken"
)

// AuthError represents authentication-specific errors with enhanced security context
type AuthError struct {
	*AppError
	// ShouldLog determines if this error should be logged.
	// Some auth errors (like invalid credentials) are expected and don't need error-level logging.
	ShouldLog bool
	// SecurityEvent indicates if this should be tracked as a security event
	SecurityEvent bool
	// TokenClass carries the expired/invalid token class ("AccessToken" or "RefreshToken")
	// so the boundary can emit the machine-readable reissue hint.
	TokenClass string
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap allows errors.Is and errors.As to work correctly
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError creates an error for invalid login credentials.
// The message never reveals whether the handle or the password was wrong,
// to prevent account enumeration.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid login handle or password",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true,
	}
}

// NewAccountSuspendedError creates an error for accounts moderated into the BAD role
func NewAccountSuspendedError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeAccountSuspended,
			Message: "Account has been suspended",
			Code:    http.StatusForbidden,
			Details: "This account was suspended by moderation. Contact support for details",
		},
		ShouldLog:     true,
		SecurityEvent: true,
	}
}

// NewAccountWithdrawnError creates an error for accounts that exited the service
func NewAccountWithdrawnError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeAccountWithdrawn,
			Message: "Account has been withdrawn",
			Code:    http.StatusForbidden,
			Details: "This account no longer exists",
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewTokenExpiredError creates an error for an expired token of the given class
func NewTokenExpiredError(tokenClass string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenExpired,
			Message: fmt.Sprintf("%s has expired", tokenClass),
			Code:    http.StatusUnauthorized,
			Details: "Please login again",
		},
		ShouldLog:     false,
		SecurityEvent: false,
		TokenClass:    tokenClass,
	}
}

// NewTokenMalformedError creates an error for unparseable or badly signed tokens.
// May indicate tampering, so it is logged and tracked.
func NewTokenMalformedError(tokenClass string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeTokenMalformed,
			Message: fmt.Sprintf("Invalid %s", tokenClass),
			Code:    http.StatusUnauthorized,
			Details: "Token is malformed or its signature is invalid",
		},
		ShouldLog:     true,
		SecurityEvent: true,
		TokenClass:    tokenClass,
	}
}

// NewMissingTokensError creates an error for requests carrying no credentials at all
func NewMissingTokensError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeMissingTokens,
			Message: "Missing authentication tokens",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

// NewDataConsistencyError creates an error for corrupted identity state,
// e.g. a linked provider row whose owning identity does not exist.
// Surfaced to the client as a generic server error.
func NewDataConsistencyError(details string) *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeDataConsistency,
			Message: "Internal server error occurred",
			Code:    http.StatusInternalServerError,
			Details: details,
		},
		ShouldLog:     true,
		SecurityEvent: false,
	}
}

// IsAuthError checks if the error is an AuthError (supports wrapped errors via errors.As)
func IsAuthError(err error) bool {
	var authErr *AuthError
	return stderrors.As(err, &authErr)
}

// GetAuthError extracts AuthError from error chain (supports wrapped errors via errors.As)
func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError returns true if the authentication error should be logged.
// This helps reduce noise in logs from expected auth failures.
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}

// IsSecurityEvent returns true if the error should be tracked as a security event
func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}
