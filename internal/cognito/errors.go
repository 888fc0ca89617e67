package cognito

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/smithy-go"

	"github.com/pinktech/kounty-api/pkg/errorutil"
)

// ErrorReason is the closed set of failure classifications for identity
// provider operations.
type ErrorReason string

const (
	ReasonConfirmSignUpFailed         ErrorReason = "CONFIRM_SIGNUP_FAILED"
	ReasonConfirmForgotPasswordFailed ErrorReason = "CONFIRM_FORGOT_PASSWORD_FAILED"
	ReasonExpiredConfirmationCode     ErrorReason = "EXPIRED_CONFIRMATION_CODE"
	ReasonForgotPasswordFailed        ErrorReason = "FORGOT_PASSWORD_FAILED"
	ReasonInvalidConfirmationCode     ErrorReason = "INVALID_CONFIRMATION_CODE"
	ReasonInvalidPassword             ErrorReason = "INVALID_PASSWORD"
	ReasonMissingAccessToken          ErrorReason = "MISSING_ACCESS_TOKEN"
	ReasonMissingIDToken              ErrorReason = "MISSING_ID_TOKEN"
	ReasonMissingRefreshToken         ErrorReason = "MISSING_REFRESH_TOKEN"
	ReasonMissingTokenExpiration      ErrorReason = "MISSING_TOKEN_EXPIRATION_DATE"
	ReasonSignInFailed                ErrorReason = "SIGN_IN_FAILED"
	ReasonSignUpFailed                ErrorReason = "SIGN_UP_FAILED"
	ReasonUnauthorized                ErrorReason = "UNAUTHORIZED"
	ReasonUserNotConfirmed            ErrorReason = "USER_NOT_CONFIRMED"
	ReasonUnknown                     ErrorReason = "UNKNOWN"
)

// Error tags an identity provider failure with its classified reason. The
// original provider error is retained for logging.
type Error struct {
	Reason ErrorReason
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cognito %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("cognito %s", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(reason ErrorReason, err error) *Error {
	return &Error{Reason: reason, Err: err}
}

// DomainError maps the classified reason onto the boundary error with its
// HTTP-equivalent status. Provider errors wrap exactly once here; the
// original cause travels along for logging only.
func (e *Error) DomainError() *errorutil.DomainError {
	return &errorutil.DomainError{
		Code:       string(e.Reason),
		Message:    e.userMessage(),
		HTTPStatus: e.httpStatus(),
		Err:        e.Err,
	}
}

func (e *Error) httpStatus() int {
	switch e.Reason {
	case ReasonInvalidConfirmationCode,
		ReasonConfirmSignUpFailed,
		ReasonExpiredConfirmationCode,
		ReasonInvalidPassword,
		ReasonUserNotConfirmed:
		return http.StatusBadRequest
	case ReasonUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (e *Error) userMessage() string {
	switch e.Reason {
	case ReasonInvalidConfirmationCode:
		return "El código de confirmación es inválido."
	case ReasonExpiredConfirmationCode:
		return "El código de confirmación ha expirado."
	case ReasonInvalidPassword:
		return "La contraseña no cumple con los requisitos."
	case ReasonUserNotConfirmed:
		return "El usuario no ha confirmado su cuenta."
	case ReasonUnauthorized:
		return "No autorizado."
	default:
		return "Error interno del servidor."
	}
}

// classify maps a provider error onto the closed reason set. The switch is
// total: every known Cognito error code has a branch and everything else,
// including non-provider transport errors, lands on UNKNOWN.
func classify(err error) *Error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return newError(ReasonUnknown, err)
	}

	switch apiErr.ErrorCode() {
	case "CodeMismatchException":
		return newError(ReasonInvalidConfirmationCode, err)
	case "ExpiredCodeException":
		return newError(ReasonExpiredConfirmationCode, err)
	case "InvalidPasswordException":
		return newError(ReasonInvalidPassword, err)
	case "NotAuthorizedException":
		return newError(ReasonUnauthorized, err)
	case "UserNotConfirmedException":
		return newError(ReasonUserNotConfirmed, err)
	default:
		return newError(ReasonUnknown, err)
	}
}
