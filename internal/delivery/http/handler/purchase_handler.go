package handler

import (
	"context"
	"net/http"

	"ecotrade-marketplace/internal/usecase/purchase"
	"ecotrade-marketplace/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PurchaseHandler struct {
	service *purchase.Service
}

func NewPurchaseHandler(service *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

func (h *PurchaseHandler) RegisterRoutes(router *gin.RouterGroup) {
	purchases := router.Group("/purchases")
	{
		purchases.POST("", h.Create)
		purchases.GET("", h.List)
		purchases.GET("/:id", h.GetByID)
		purchases.PATCH("/:id/status", h.UpdateStatus)
		purchases.POST("/:id/confirm", h.Confirm)
		purchases.POST("/:id/complete", h.Complete)
		purchases.POST("/:id/cancel", h.Cancel)
		purchases.DELETE("/:id", h.Cancel)
	}
}

func (h *PurchaseHandler) Create(c *gin.Context) {
	buyerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req purchase.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), buyerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Purchase created", result)
}

func (h *PurchaseHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req purchase.ListPurchasesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Purchases retrieved", result)
}

func (h *PurchaseHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	purchaseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), purchaseID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Purchase retrieved", result)
}

func (h *PurchaseHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	purchaseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req purchase.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), purchaseID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Purchase status updated", result)
}

func (h *PurchaseHandler) Confirm(c *gin.Context) {
	h.transition(c, h.service.Confirm, "Purchase confirmed")
}

func (h *PurchaseHandler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete, "Purchase completed")
}

func (h *PurchaseHandler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel, "Purchase cancelled")
}

type transitionFunc func(ctx context.Context, purchaseID, actorID uuid.UUID) (*purchase.PurchaseResponse, error)

func (h *PurchaseHandler) transition(c *gin.Context, op transitionFunc, message string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	purchaseID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := op(c.Request.Context(), purchaseID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message, result)
}
