package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is what services hand back to routes. A nil ErrorResponse
// means success; anything else is serialized as-is with its status code.
type ErrorResponse interface {
	error
	Code() int
}

type simpleError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (s *simpleError) Error() string {
	return s.Message
}

func (s *simpleError) Code() int {
	return s.StatusCode
}

func NewSimple(code int, message string) ErrorResponse {
	return &simpleError{StatusCode: code, Message: message}
}

var (
	InternalServerError   = NewSimple(http.StatusInternalServerError, "Internal server error")
	NotFoundError         = NewSimple(http.StatusNotFound, "Not found")
	MalformedBodyError    = NewSimple(http.StatusBadRequest, "Malformed request body")
	InvalidAuthTokenError = NewSimple(http.StatusUnauthorized, "Invalid or missing auth token")

	// Identity-provider outcomes, mapped from the credential exchange.
	IDPCredentialsMismatchError = NewSimple(http.StatusUnauthorized, "Password does not match")
	IDPUserNotFoundError        = NewSimple(http.StatusUnauthorized, "Shared login user does not exist")

	// SHARED_LOGIN_EMAIL is resolved at sign-in time, so a missing value is
	// an inline form error rather than a startup failure.
	MissingSharedLoginError = NewSimple(http.StatusUnprocessableEntity, "Missing SHARED_LOGIN_EMAIL configuration")
)

func NewMissingParamError(name string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Missing required parameter %q", name))
}

func NewInvalidParamTypeError(name, expected string) ErrorResponse {
	return NewSimple(http.StatusBadRequest, fmt.Sprintf("Parameter %q must be of type %s", name, expected))
}

type validationError struct {
	Message string   `json:"error"`
	Fields  []string `json:"fields"`
}

func (v *validationError) Error() string {
	return v.Message
}

func (v *validationError) Code() int {
	return http.StatusUnprocessableEntity
}

// FromValidationError flattens validator.ValidationErrors into a response
// listing the offending fields.
func FromValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return InternalServerError
	}

	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag())
	}
	return &validationError{Message: "Validation failed", Fields: fields}
}
