package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// It deliberately does not reveal whether the email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = errors.New("user already exists")
	// ErrListNotFound is returned when a shopping list does not exist or
	// belongs to another user. The two cases are indistinguishable on
	// purpose.
	ErrListNotFound = errors.New("shopping list not found")
	// ErrItemNotFound is returned when an item does not exist or its parent
	// list is not owned by the caller.
	ErrItemNotFound = errors.New("shopping list item not found")
	// ErrAlreadyRevoked is returned when a token is revoked a second time.
	ErrAlreadyRevoked = errors.New("token already revoked")
	// ErrMailDelivery is returned when a notification email could not be
	// sent. It never crashes the request that triggered the mail.
	ErrMailDelivery = errors.New("mail delivery failed")

	// Token verification failures. Exactly one of these is reported per
	// failed verification; all map to HTTP 401.
	ErrTokenInvalid = errors.New("token is malformed or has an invalid signature")
	ErrTokenExpired = errors.New("token is expired")
	ErrTokenRevoked = errors.New("token is revoked")
)

// ValidationError carries a user-facing message about malformed input. It is
// raised before any store access and maps to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. The messages for the
// user-visible failures keep the wording clients of this API have always
// seen.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return NewHTTPError(http.StatusBadRequest, ve.Message, "VALIDATION_ERROR")
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, "Invalid email or password, Please try again", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, "User already exists. Please login.", "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrListNotFound):
		return NewHTTPError(http.StatusNotFound, "A shopping list with given ID was not found for this user", "LIST_NOT_FOUND")
	case errors.Is(err, ErrItemNotFound):
		return NewHTTPError(http.StatusNotFound, "A shopping list item with given ID was not found for this user", "ITEM_NOT_FOUND")
	case errors.Is(err, ErrTokenInvalid):
		return NewHTTPError(http.StatusUnauthorized, "Invalid token. Please register or login", "INVALID_TOKEN")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, "Expired token. Please login to get a new token", "TOKEN_EXPIRED")
	case errors.Is(err, ErrTokenRevoked):
		return NewHTTPError(http.StatusUnauthorized, "Token blacklisted. Please log in again.", "TOKEN_REVOKED")
	case errors.Is(err, ErrMailDelivery):
		return NewHTTPError(http.StatusInternalServerError, "could not deliver the email", "MAIL_DELIVERY_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
