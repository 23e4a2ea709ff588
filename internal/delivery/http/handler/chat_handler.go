package handler

import (
	"net/http"

	"ecotrade-marketplace/internal/usecase/chat"
	"ecotrade-marketplace/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service *chat.Service
}

func NewChatHandler(service *chat.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	chats := router.Group("/chats")
	{
		chats.GET("", h.GetAllConversations)
		chats.GET("/:purchaseId/messages", h.GetMessages)
		chats.POST("/:purchaseId/messages", h.SendMessage)
		chats.DELETE("/messages/:id", h.DeleteMessage)
	}
}

func (h *ChatHandler) GetAllConversations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.service.GetAllConversations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Conversations retrieved", result)
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	purchaseID, ok := pathUUID(c, "purchaseId")
	if !ok {
		return
	}

	result, err := h.service.GetMessagesByPurchase(c.Request.Context(), purchaseID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Messages retrieved", result)
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	purchaseID, ok := pathUUID(c, "purchaseId")
	if !ok {
		return
	}

	var req chat.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.SendMessage(c.Request.Context(), purchaseID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Message sent", result)
}

func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	messageID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteMessage(c.Request.Context(), messageID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Message deleted", nil)
}
