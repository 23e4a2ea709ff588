package handler

import (
	"errors"
	"net/http"

	domainMessage "ecotrade-marketplace/internal/domain/message"
	domainProduct "ecotrade-marketplace/internal/domain/product"
	domainPurchase "ecotrade-marketplace/internal/domain/purchase"
	domainQuestion "ecotrade-marketplace/internal/domain/question"
	domainReview "ecotrade-marketplace/internal/domain/review"
	domainSubscription "ecotrade-marketplace/internal/domain/subscription"
	domainUser "ecotrade-marketplace/internal/domain/user"
	appErrors "ecotrade-marketplace/pkg/errors"
	"ecotrade-marketplace/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// statusOf maps service errors to HTTP status codes.
func statusOf(err error) int {
	switch appErrors.CodeOf(err) {
	case appErrors.CodeValidation, appErrors.CodeEmptyMessage, appErrors.CodeRatingRequired:
		return http.StatusBadRequest
	case appErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErrors.CodeNotAuthorized, appErrors.CodeSelfPurchase,
		appErrors.CodeChatNotPermitted, appErrors.CodeReviewNotPermitted,
		appErrors.CodeSubscriptionLimit:
		return http.StatusForbidden
	case appErrors.CodeNotFound:
		return http.StatusNotFound
	case appErrors.CodeInvalidTransition, appErrors.CodeDuplicateReview,
		appErrors.CodeProductUnavailable:
		return http.StatusConflict
	}

	switch {
	case errors.Is(err, appErrors.ErrUserNotFound),
		errors.Is(err, domainUser.ErrUserNotFound),
		errors.Is(err, appErrors.ErrNotFound),
		errors.Is(err, domainProduct.ErrProductNotFound),
		errors.Is(err, domainPurchase.ErrPurchaseNotFound),
		errors.Is(err, domainMessage.ErrMessageNotFound),
		errors.Is(err, domainReview.ErrReviewNotFound),
		errors.Is(err, domainQuestion.ErrQuestionNotFound),
		errors.Is(err, domainQuestion.ErrAnswerNotFound),
		errors.Is(err, domainSubscription.ErrSubscriptionNotFound):
		return http.StatusNotFound
	case errors.Is(err, appErrors.ErrUserAlreadyExists),
		errors.Is(err, domainUser.ErrUserAlreadyExists),
		errors.Is(err, domainReview.ErrReviewExists):
		return http.StatusConflict
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, appErrors.ErrInvalidInput):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// respondError writes the error with its mapped status. Internal errors
// are masked with a generic message.
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	utils.ErrorResponse(c, status, message)
}

// currentUserID reads the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get("userID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}

	id, ok := raw.(uuid.UUID)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}

	return id, true
}

// pathUUID parses a uuid path parameter.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}
