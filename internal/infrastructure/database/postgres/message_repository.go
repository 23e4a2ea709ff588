package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecotrade-marketplace/internal/domain/message"
	"ecotrade-marketplace/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRepository implements the message domain Repository interface
type MessageRepository struct {
	db *DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *DB) message.Repository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *message.Message) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()

	dbModel := toMessageModel(m)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	m.ID = dbModel.ID
	m.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, messageID uuid.UUID) (*message.Message, error) {
	var dbModel models.MessageModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", messageID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, message.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return toMessageEntity(&dbModel), nil
}

func (r *MessageRepository) ListByPurchase(ctx context.Context, purchaseID uuid.UUID) ([]*message.Message, error) {
	var dbModels []models.MessageModel
	err := r.db.DB.WithContext(ctx).
		Where("purchase_id = ?", purchaseID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	entities := make([]*message.Message, len(dbModels))
	for i := range dbModels {
		entities[i] = toMessageEntity(&dbModels[i])
	}

	return entities, nil
}

func (r *MessageRepository) ListByPurchases(ctx context.Context, purchaseIDs []uuid.UUID) (map[uuid.UUID][]*message.Message, error) {
	result := make(map[uuid.UUID][]*message.Message, len(purchaseIDs))
	if len(purchaseIDs) == 0 {
		return result, nil
	}

	var dbModels []models.MessageModel
	err := r.db.DB.WithContext(ctx).
		Where("purchase_id IN ?", purchaseIDs).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	for i := range dbModels {
		entity := toMessageEntity(&dbModels[i])
		result[entity.PurchaseID] = append(result[entity.PurchaseID], entity)
	}

	return result, nil
}

func (r *MessageRepository) Delete(ctx context.Context, messageID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", messageID).
		Delete(&models.MessageModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return message.ErrMessageNotFound
	}

	return nil
}

func toMessageModel(m *message.Message) *models.MessageModel {
	return &models.MessageModel{
		ID:         m.ID,
		PurchaseID: m.PurchaseID,
		SenderID:   m.SenderID,
		Text:       m.Text,
		CreatedAt:  m.CreatedAt,
	}
}

func toMessageEntity(m *models.MessageModel) *message.Message {
	return &message.Message{
		ID:         m.ID,
		PurchaseID: m.PurchaseID,
		SenderID:   m.SenderID,
		Text:       m.Text,
		CreatedAt:  m.CreatedAt,
	}
}
