package question

import (
	"time"

	domainQuestion "ecotrade-marketplace/internal/domain/question"

	"github.com/google/uuid"
)

// Request DTOs
type AskQuestionRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required,uuid"`
	Question  string    `json:"question" validate:"required,min=3,max=1000"`
}

type AnswerQuestionRequest struct {
	Answer string `json:"answer" validate:"required,min=1,max=1000"`
}

// Response DTOs
type AnswerResponse struct {
	ID         uuid.UUID `json:"id"`
	AnswererID uuid.UUID `json:"answerer_id"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
}

type QuestionResponse struct {
	ID        uuid.UUID         `json:"id"`
	ProductID uuid.UUID         `json:"product_id"`
	UserID    uuid.UUID         `json:"user_id"`
	UserName  string            `json:"user_name,omitempty"`
	Question  string            `json:"question"`
	Answers   []*AnswerResponse `json:"answers"`
	CreatedAt time.Time         `json:"created_at"`
}

func toAnswerResponse(a *domainQuestion.Answer) *AnswerResponse {
	return &AnswerResponse{
		ID:         a.ID,
		AnswererID: a.AnswererID,
		Answer:     a.Answer,
		CreatedAt:  a.CreatedAt,
	}
}

func toQuestionResponse(q *domainQuestion.Question, answers []*domainQuestion.Answer) *QuestionResponse {
	response := &QuestionResponse{
		ID:        q.ID,
		ProductID: q.ProductID,
		UserID:    q.UserID,
		Question:  q.Question,
		Answers:   make([]*AnswerResponse, 0, len(answers)),
		CreatedAt: q.CreatedAt,
	}
	for _, a := range answers {
		response.Answers = append(response.Answers, toAnswerResponse(a))
	}
	return response
}
