package chat

import (
	"time"

	domainMessage "ecotrade-marketplace/internal/domain/message"
	domainPurchase "ecotrade-marketplace/internal/domain/purchase"

	"github.com/google/uuid"
)

// Request DTOs
type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// Response DTOs
type MessageResponse struct {
	ID         uuid.UUID `json:"id"`
	PurchaseID uuid.UUID `json:"purchase_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	Text       string    `json:"text"`
	Mine       bool      `json:"mine"`
	CreatedAt  time.Time `json:"created_at"`
}

// CounterpartyInfo identifies the other participant of a conversation.
type CounterpartyInfo struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
}

// ConversationSummary is one row of the inbox: a purchase plus its
// latest message, if any.
type ConversationSummary struct {
	PurchaseID     uuid.UUID             `json:"purchase_id"`
	PurchaseStatus domainPurchase.Status `json:"purchase_status"`
	ProductID      uuid.UUID             `json:"product_id"`
	ProductTitle   string                `json:"product_title,omitempty"`
	ProductImage   string                `json:"product_image,omitempty"`
	Counterparty   *CounterpartyInfo     `json:"counterparty,omitempty"`

	LastMessage   *MessageResponse `json:"last_message,omitempty"`
	MessageCount  int              `json:"message_count"`
	CanChat       bool             `json:"can_chat"`
	PurchaseStart time.Time        `json:"purchase_started_at"`
}

func toMessageResponse(m *domainMessage.Message, viewerID uuid.UUID) *MessageResponse {
	return &MessageResponse{
		ID:         m.ID,
		PurchaseID: m.PurchaseID,
		SenderID:   m.SenderID,
		Text:       m.Text,
		Mine:       m.SenderID == viewerID,
		CreatedAt:  m.CreatedAt,
	}
}

func toMessageResponses(messages []*domainMessage.Message, viewerID uuid.UUID) []*MessageResponse {
	responses := make([]*MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = toMessageResponse(m, viewerID)
	}
	return responses
}
