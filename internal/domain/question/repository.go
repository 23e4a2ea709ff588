package question

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for question/answer repository operations
type Repository interface {
	CreateQuestion(ctx context.Context, question *Question) error
	GetQuestionByID(ctx context.Context, questionID uuid.UUID) (*Question, error)
	ListQuestionsByProduct(ctx context.Context, productID uuid.UUID) ([]*Question, error)
	DeleteQuestion(ctx context.Context, questionID uuid.UUID) error

	CreateAnswer(ctx context.Context, answer *Answer) error
	GetAnswerByID(ctx context.Context, answerID uuid.UUID) (*Answer, error)
	ListAnswersByQuestion(ctx context.Context, questionID uuid.UUID) ([]*Answer, error)
	ListAnswersByQuestions(ctx context.Context, questionIDs []uuid.UUID) (map[uuid.UUID][]*Answer, error)
	DeleteAnswer(ctx context.Context, answerID uuid.UUID) error
}
