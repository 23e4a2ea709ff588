package handler

import (
	"net/http"

	"ecotrade-marketplace/internal/usecase/review"
	"ecotrade-marketplace/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	service *review.Service
}

func NewReviewHandler(service *review.Service) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/reviews/user/:id", h.ListByUser)
}

func (h *ReviewHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/reviews")
	{
		reviews.POST("", h.Submit)
		reviews.DELETE("/:id", h.Delete)
	}
}

func (h *ReviewHandler) Submit(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req review.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Submit(c.Request.Context(), reviewerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Review submitted", result)
}

func (h *ReviewHandler) ListByUser(c *gin.Context) {
	targetID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req review.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.ListByUser(c.Request.Context(), targetID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reviews retrieved", result)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	reviewID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	isAdmin := false
	if role, exists := c.Get("role"); exists {
		isAdmin = role == "admin"
	}

	if err := h.service.Delete(c.Request.Context(), reviewID, userID, isAdmin); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Review deleted", nil)
}
