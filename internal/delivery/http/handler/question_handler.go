package handler

import (
	"net/http"

	"ecotrade-marketplace/internal/usecase/question"
	"ecotrade-marketplace/pkg/utils"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	service *question.Service
}

func NewQuestionHandler(service *question.Service) *QuestionHandler {
	return &QuestionHandler{service: service}
}

func (h *QuestionHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/products/:id/questions", h.ListByProduct)
	router.GET("/questions/:id/answers", h.ListAnswers)
}

func (h *QuestionHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	questions := router.Group("/questions")
	{
		questions.POST("", h.Ask)
		questions.POST("/:id/answers", h.Answer)
		questions.DELETE("/:id", h.Delete)
	}

	router.DELETE("/answers/:id", h.DeleteAnswer)
}

func (h *QuestionHandler) Ask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req question.AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Ask(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Question posted", result)
}

func (h *QuestionHandler) Answer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	questionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req question.AnswerQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Answer(c.Request.Context(), questionID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Answer posted", result)
}

func (h *QuestionHandler) ListByProduct(c *gin.Context) {
	productID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Questions retrieved", result)
}

func (h *QuestionHandler) ListAnswers(c *gin.Context) {
	questionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ListAnswers(c.Request.Context(), questionID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Answers retrieved", result)
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	questionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), questionID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Question deleted", nil)
}

func (h *QuestionHandler) DeleteAnswer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	answerID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteAnswer(c.Request.Context(), answerID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Answer deleted", nil)
}
