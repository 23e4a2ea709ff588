package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecotrade-marketplace/internal/domain/question"
	"ecotrade-marketplace/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestionRepository implements the question domain Repository interface
type QuestionRepository struct {
	db *DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *DB) question.Repository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) CreateQuestion(ctx context.Context, q *question.Question) error {
	q.ID = uuid.New()
	q.CreatedAt = time.Now()

	dbModel := toQuestionModel(q)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	q.ID = dbModel.ID
	q.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *QuestionRepository) GetQuestionByID(ctx context.Context, questionID uuid.UUID) (*question.Question, error) {
	var dbModel models.QuestionModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", questionID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, question.ErrQuestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	return toQuestionEntity(&dbModel), nil
}

func (r *QuestionRepository) ListQuestionsByProduct(ctx context.Context, productID uuid.UUID) ([]*question.Question, error) {
	var dbModels []models.QuestionModel
	err := r.db.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	entities := make([]*question.Question, len(dbModels))
	for i := range dbModels {
		entities[i] = toQuestionEntity(&dbModels[i])
	}

	return entities, nil
}

func (r *QuestionRepository) DeleteQuestion(ctx context.Context, questionID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", questionID).
		Delete(&models.QuestionModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete question: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return question.ErrQuestionNotFound
	}

	return nil
}

func (r *QuestionRepository) CreateAnswer(ctx context.Context, a *question.Answer) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()

	dbModel := toAnswerModel(a)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}

	a.ID = dbModel.ID
	a.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *QuestionRepository) GetAnswerByID(ctx context.Context, answerID uuid.UUID) (*question.Answer, error) {
	var dbModel models.AnswerModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", answerID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, question.ErrAnswerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}

	return toAnswerEntity(&dbModel), nil
}

func (r *QuestionRepository) ListAnswersByQuestion(ctx context.Context, questionID uuid.UUID) ([]*question.Answer, error) {
	var dbModels []models.AnswerModel
	err := r.db.DB.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	entities := make([]*question.Answer, len(dbModels))
	for i := range dbModels {
		entities[i] = toAnswerEntity(&dbModels[i])
	}

	return entities, nil
}

func (r *QuestionRepository) ListAnswersByQuestions(ctx context.Context, questionIDs []uuid.UUID) (map[uuid.UUID][]*question.Answer, error) {
	result := make(map[uuid.UUID][]*question.Answer, len(questionIDs))
	if len(questionIDs) == 0 {
		return result, nil
	}

	var dbModels []models.AnswerModel
	err := r.db.DB.WithContext(ctx).
		Where("question_id IN ?", questionIDs).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	for i := range dbModels {
		entity := toAnswerEntity(&dbModels[i])
		result[entity.QuestionID] = append(result[entity.QuestionID], entity)
	}

	return result, nil
}

func (r *QuestionRepository) DeleteAnswer(ctx context.Context, answerID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", answerID).
		Delete(&models.AnswerModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete answer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return question.ErrAnswerNotFound
	}

	return nil
}

func toQuestionModel(q *question.Question) *models.QuestionModel {
	return &models.QuestionModel{
		ID:        q.ID,
		ProductID: q.ProductID,
		UserID:    q.UserID,
		Question:  q.Question,
		CreatedAt: q.CreatedAt,
	}
}

func toQuestionEntity(m *models.QuestionModel) *question.Question {
	return &question.Question{
		ID:        m.ID,
		ProductID: m.ProductID,
		UserID:    m.UserID,
		Question:  m.Question,
		CreatedAt: m.CreatedAt,
	}
}

func toAnswerModel(a *question.Answer) *models.AnswerModel {
	return &models.AnswerModel{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		AnswererID: a.AnswererID,
		Answer:     a.Answer,
		CreatedAt:  a.CreatedAt,
	}
}

func toAnswerEntity(m *models.AnswerModel) *question.Answer {
	return &question.Answer{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		AnswererID: m.AnswererID,
		Answer:     m.Answer,
		CreatedAt:  m.CreatedAt,
	}
}
