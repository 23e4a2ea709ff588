package models

import (
	"time"

	"github.com/google/uuid"
)

// QuestionModel represents the database model for Questions
type QuestionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Question  string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`

	Product *ProductModel `gorm:"foreignKey:ProductID"`
	User    *UserModel    `gorm:"foreignKey:UserID"`
}

func (QuestionModel) TableName() string {
	return "questions"
}

// AnswerModel represents the database model for Answers
type AnswerModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	QuestionID uuid.UUID `gorm:"type:uuid;not null;index"`
	AnswererID uuid.UUID `gorm:"type:uuid;not null"`
	Answer     string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`

	Question *QuestionModel `gorm:"foreignKey:QuestionID"`
	Answerer *UserModel     `gorm:"foreignKey:AnswererID"`
}

func (AnswerModel) TableName() string {
	return "answers"
}
