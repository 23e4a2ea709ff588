package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	ErrInvalidInput = errors.New("invalid input data")
	ErrInvalidEmail = errors.New("invalid email format")
	ErrWeakPassword = errors.New("password does not meet requirements")

	// Purchase lifecycle
	ErrInvalidTransition     = errors.New("invalid purchase status transition")
	ErrSelfPurchaseForbidden = errors.New("cannot purchase your own product")
	ErrNotAuthorized         = errors.New("user is not a participant of this purchase")

	// Chat
	ErrChatNotPermitted = errors.New("chat is not permitted for this purchase")
	ErrEmptyMessage     = errors.New("message text must not be empty")

	// Reviews
	ErrRatingRequired     = errors.New("rating is required")
	ErrDuplicateReview    = errors.New("purchase has already been reviewed")
	ErrReviewNotPermitted = errors.New("review is not permitted for this purchase")

	ErrNotFound = errors.New("resource not found")
)

// AppError codes surfaced to API clients.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeSelfPurchase       = "SELF_PURCHASE_FORBIDDEN"
	CodeNotAuthorized      = "NOT_AUTHORIZED"
	CodeChatNotPermitted   = "CHAT_NOT_PERMITTED"
	CodeEmptyMessage       = "EMPTY_MESSAGE"
	CodeRatingRequired     = "RATING_REQUIRED"
	CodeDuplicateReview    = "DUPLICATE_REVIEW"
	CodeReviewNotPermitted = "REVIEW_NOT_PERMITTED"
	CodeTransportError     = "TRANSPORT_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeProductUnavailable = "PRODUCT_UNAVAILABLE"
	CodeSubscriptionLimit  = "SUBSCRIPTION_LIMIT_REACHED"
	CodeUnauthorized       = "UNAUTHORIZED"
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf extracts the AppError code from err, or an empty string.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
