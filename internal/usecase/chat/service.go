package chat

import (
	"context"
	"sort"
	"strings"

	domainMessage "ecotrade-marketplace/internal/domain/message"
	domainProduct "ecotrade-marketplace/internal/domain/product"
	domainPurchase "ecotrade-marketplace/internal/domain/purchase"
	domainUser "ecotrade-marketplace/internal/domain/user"
	"ecotrade-marketplace/internal/logger"
	appErrors "ecotrade-marketplace/pkg/errors"
	"ecotrade-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements purchase-scoped chat use cases
type Service struct {
	messageRepo  domainMessage.Repository
	purchaseRepo domainPurchase.Repository
	productRepo  domainProduct.Repository
	userRepo     domainUser.Repository
}

// NewService creates a new chat service
func NewService(
	messageRepo domainMessage.Repository,
	purchaseRepo domainPurchase.Repository,
	productRepo domainProduct.Repository,
	userRepo domainUser.Repository,
) *Service {
	return &Service{
		messageRepo:  messageRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
	}
}

// SendMessage appends a message to the purchase's conversation.
func (s *Service) SendMessage(ctx context.Context, purchaseID, senderID uuid.UUID, req *SendMessageRequest) (*MessageResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	text := strings.TrimSpace(utils.SanitizeText(req.Text))
	if text == "" {
		return nil, appErrors.NewAppError(appErrors.CodeEmptyMessage, "Message text must not be empty", appErrors.ErrEmptyMessage)
	}

	p, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if !domainPurchase.CanChat(senderID, p) {
		return nil, appErrors.NewAppError(
			appErrors.CodeChatNotPermitted,
			"Chat is not permitted on this purchase",
			appErrors.ErrChatNotPermitted,
		)
	}

	msg := &domainMessage.Message{
		PurchaseID: purchaseID,
		SenderID:   senderID,
		Text:       text,
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	logger.Info("Message sent",
		zap.String("purchase_id", purchaseID.String()),
		zap.String("sender_id", senderID.String()),
		zap.String("event", "message_sent"),
	)

	return toMessageResponse(msg, senderID), nil
}

// GetMessagesByPurchase returns the full ordered history of one
// conversation for a participant.
func (s *Service) GetMessagesByPurchase(ctx context.Context, purchaseID, viewerID uuid.UUID) ([]*MessageResponse, error) {
	p, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	if !p.IsParticipant(viewerID) {
		return nil, appErrors.NewAppError(
			appErrors.CodeChatNotPermitted,
			"Only the buyer or seller may read this conversation",
			appErrors.ErrChatNotPermitted,
		)
	}

	messages, err := s.messageRepo.ListByPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	return toMessageResponses(messages, viewerID), nil
}

// GetAllConversations builds the inbox for a user: one summary per
// purchase they participate in, annotated with the latest message, the
// counterparty and the product. Ordering: conversations with messages
// first, most recent message first; conversations without messages
// after, newest purchase first.
func (s *Service) GetAllConversations(ctx context.Context, userID uuid.UUID) ([]*ConversationSummary, error) {
	purchases, err := s.purchaseRepo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(purchases) == 0 {
		return []*ConversationSummary{}, nil
	}

	purchaseIDs := make([]uuid.UUID, len(purchases))
	for i, p := range purchases {
		purchaseIDs[i] = p.ID
	}

	messagesByPurchase, err := s.messageRepo.ListByPurchases(ctx, purchaseIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]*ConversationSummary, len(purchases))
	for i, p := range purchases {
		summary := &ConversationSummary{
			PurchaseID:     p.ID,
			PurchaseStatus: p.Status,
			ProductID:      p.ProductID,
			CanChat:        domainPurchase.CanChat(userID, p),
			PurchaseStart:  p.CreatedAt,
		}

		if history := messagesByPurchase[p.ID]; len(history) > 0 {
			summary.MessageCount = len(history)
			summary.LastMessage = toMessageResponse(history[len(history)-1], userID)
		}

		summaries[i] = summary
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		switch {
		case a.LastMessage != nil && b.LastMessage != nil:
			return a.LastMessage.CreatedAt.After(b.LastMessage.CreatedAt)
		case a.LastMessage != nil:
			return true
		case b.LastMessage != nil:
			return false
		default:
			return a.PurchaseStart.After(b.PurchaseStart)
		}
	})

	s.annotate(ctx, summaries, purchases, userID)

	return summaries, nil
}

// DeleteMessage removes a message. Only its sender may delete it.
func (s *Service) DeleteMessage(ctx context.Context, messageID, userID uuid.UUID) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if msg.SenderID != userID {
		return appErrors.NewAppError(
			appErrors.CodeNotAuthorized,
			"Only the sender may delete this message",
			domainMessage.ErrNotSender,
		)
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return err
	}

	logger.Info("Message deleted",
		zap.String("message_id", messageID.String()),
		zap.String("event", "message_deleted"),
	)

	return nil
}

// annotate fills product and counterparty info. These are decoration:
// lookup failures leave the fields empty rather than failing the inbox.
func (s *Service) annotate(ctx context.Context, summaries []*ConversationSummary, purchases []*domainPurchase.Purchase, userID uuid.UUID) {
	productIDs := make([]uuid.UUID, 0, len(purchases))
	counterpartyIDs := make([]uuid.UUID, 0, len(purchases))
	seenProducts := make(map[uuid.UUID]bool, len(purchases))
	seenUsers := make(map[uuid.UUID]bool, len(purchases))
	counterpartyOf := make(map[uuid.UUID]uuid.UUID, len(purchases))

	for _, p := range purchases {
		other := p.SellerID
		if userID == p.SellerID {
			other = p.BuyerID
		}
		counterpartyOf[p.ID] = other

		if !seenProducts[p.ProductID] {
			seenProducts[p.ProductID] = true
			productIDs = append(productIDs, p.ProductID)
		}
		if !seenUsers[other] {
			seenUsers[other] = true
			counterpartyIDs = append(counterpartyIDs, other)
		}
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		logger.Warn("Product lookup failed for conversations", zap.Error(err))
		products = nil
	}
	users, err := s.userRepo.GetByIDs(ctx, counterpartyIDs)
	if err != nil {
		logger.Warn("Counterparty lookup failed for conversations", zap.Error(err))
		users = nil
	}

	for _, summary := range summaries {
		if prod, ok := products[summary.ProductID]; ok {
			summary.ProductTitle = prod.Title
			if len(prod.Images) > 0 {
				summary.ProductImage = prod.Images[0]
			}
		}
		if other, ok := users[counterpartyOf[summary.PurchaseID]]; ok {
			summary.Counterparty = &CounterpartyInfo{
				ID:       other.ID,
				FullName: other.FullName,
			}
		}
	}
}
