package handler

import (
	"net/http"

	"ecotrade-marketplace/internal/usecase/subscription"
	"ecotrade-marketplace/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	service *subscription.Service
}

func NewSubscriptionHandler(service *subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

func (h *SubscriptionHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/subscriptions/plans", h.Plans)
}

func (h *SubscriptionHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	subscriptions := router.Group("/subscriptions")
	{
		subscriptions.POST("", h.Subscribe)
		subscriptions.GET("/active", h.Active)
		subscriptions.GET("/limits", h.Limits)
		subscriptions.GET("/history", h.History)
		subscriptions.POST("/:id/cancel", h.Cancel)
	}
}

func (h *SubscriptionHandler) Plans(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Plans retrieved", h.service.Plans())
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req subscription.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Subscribe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Subscription activated", result)
}

func (h *SubscriptionHandler) Active(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.service.Active(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription retrieved", result)
}

func (h *SubscriptionHandler) Limits(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.service.Limits(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Limits retrieved", result)
}

func (h *SubscriptionHandler) History(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.service.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscriptions retrieved", result)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	subscriptionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), subscriptionID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled", nil)
}
