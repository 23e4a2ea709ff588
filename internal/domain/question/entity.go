package question

import (
	"time"

	"github.com/google/uuid"
)

// Question is a public question asked on a product listing
type Question struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	UserID    uuid.UUID
	Question  string
	CreatedAt time.Time
}

// Answer is the seller's reply to a question
type Answer struct {
	ID         uuid.UUID
	QuestionID uuid.UUID
	AnswererID uuid.UUID
	Answer     string
	CreatedAt  time.Time
}
