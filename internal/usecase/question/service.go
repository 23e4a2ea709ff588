package question

import (
	"context"
	"strings"

	domainProduct "ecotrade-marketplace/internal/domain/product"
	domainQuestion "ecotrade-marketplace/internal/domain/question"
	domainUser "ecotrade-marketplace/internal/domain/user"
	"ecotrade-marketplace/internal/logger"
	appErrors "ecotrade-marketplace/pkg/errors"
	"ecotrade-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the public product Q&A use cases
type Service struct {
	questionRepo domainQuestion.Repository
	productRepo  domainProduct.Repository
	userRepo     domainUser.Repository
}

// NewService creates a new question service
func NewService(
	questionRepo domainQuestion.Repository,
	productRepo domainProduct.Repository,
	userRepo domainUser.Repository,
) *Service {
	return &Service{
		questionRepo: questionRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
	}
}

// Ask posts a public question on a listing. Anyone but the seller may ask.
func (s *Service) Ask(ctx context.Context, userID uuid.UUID, req *AskQuestionRequest) (*QuestionResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	text := strings.TrimSpace(utils.SanitizeText(req.Question))
	if text == "" {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Question must not be empty", appErrors.ErrInvalidInput)
	}

	prod, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if prod.SellerID == userID {
		return nil, appErrors.NewAppError(
			appErrors.CodeNotAuthorized,
			"Sellers cannot ask questions on their own listings",
			appErrors.ErrNotAuthorized,
		)
	}

	newQuestion := &domainQuestion.Question{
		ProductID: prod.ID,
		UserID:    userID,
		Question:  text,
	}

	if err := s.questionRepo.CreateQuestion(ctx, newQuestion); err != nil {
		return nil, err
	}

	logger.Info("Question asked",
		zap.String("question_id", newQuestion.ID.String()),
		zap.String("product_id", prod.ID.String()),
		zap.String("event", "question_asked"),
	)

	return toQuestionResponse(newQuestion, nil), nil
}

// Answer posts the seller's reply to a question on their listing.
func (s *Service) Answer(ctx context.Context, questionID, userID uuid.UUID, req *AnswerQuestionRequest) (*AnswerResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	q, err := s.questionRepo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	prod, err := s.productRepo.GetByID(ctx, q.ProductID)
	if err != nil {
		return nil, err
	}

	if prod.SellerID != userID {
		return nil, appErrors.NewAppError(
			appErrors.CodeNotAuthorized,
			"Only the seller may answer questions on this listing",
			domainQuestion.ErrNotSeller,
		)
	}

	newAnswer := &domainQuestion.Answer{
		QuestionID: questionID,
		AnswererID: userID,
		Answer:     strings.TrimSpace(utils.SanitizeText(req.Answer)),
	}

	if err := s.questionRepo.CreateAnswer(ctx, newAnswer); err != nil {
		return nil, err
	}

	logger.Info("Question answered",
		zap.String("question_id", questionID.String()),
		zap.String("event", "question_answered"),
	)

	return toAnswerResponse(newAnswer), nil
}

// ListByProduct returns all questions on a listing with their answers,
// newest question first.
func (s *Service) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*QuestionResponse, error) {
	questions, err := s.questionRepo.ListQuestionsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return []*QuestionResponse{}, nil
	}

	questionIDs := make([]uuid.UUID, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	answers, err := s.questionRepo.ListAnswersByQuestions(ctx, questionIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]*QuestionResponse, len(questions))
	for i, q := range questions {
		responses[i] = toQuestionResponse(q, answers[q.ID])
	}
	s.annotateAskers(ctx, responses, questions)

	return responses, nil
}

// Delete removes a question together with its answers. The asker or the
// listing's seller may delete.
func (s *Service) Delete(ctx context.Context, questionID, userID uuid.UUID) error {
	q, err := s.questionRepo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return err
	}

	if q.UserID != userID {
		prod, err := s.productRepo.GetByID(ctx, q.ProductID)
		if err != nil {
			return err
		}
		if prod.SellerID != userID {
			return appErrors.NewAppError(
				appErrors.CodeNotAuthorized,
				"Only the asker or the seller may delete this question",
				appErrors.ErrNotAuthorized,
			)
		}
	}

	return s.questionRepo.DeleteQuestion(ctx, questionID)
}

// ListAnswers returns a question's answers, oldest first.
func (s *Service) ListAnswers(ctx context.Context, questionID uuid.UUID) ([]*AnswerResponse, error) {
	if _, err := s.questionRepo.GetQuestionByID(ctx, questionID); err != nil {
		return nil, err
	}

	answers, err := s.questionRepo.ListAnswersByQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	responses := make([]*AnswerResponse, len(answers))
	for i, a := range answers {
		responses[i] = toAnswerResponse(a)
	}

	return responses, nil
}

// DeleteAnswer removes an answer. Only its author may delete it.
func (s *Service) DeleteAnswer(ctx context.Context, answerID, userID uuid.UUID) error {
	a, err := s.questionRepo.GetAnswerByID(ctx, answerID)
	if err != nil {
		return err
	}

	if a.AnswererID != userID {
		return appErrors.NewAppError(
			appErrors.CodeNotAuthorized,
			"Only the author may delete this answer",
			appErrors.ErrNotAuthorized,
		)
	}

	return s.questionRepo.DeleteAnswer(ctx, answerID)
}

func (s *Service) annotateAskers(ctx context.Context, responses []*QuestionResponse, questions []*domainQuestion.Question) {
	ids := make([]uuid.UUID, 0, len(questions))
	seen := make(map[uuid.UUID]bool, len(questions))
	for _, q := range questions {
		if !seen[q.UserID] {
			seen[q.UserID] = true
			ids = append(ids, q.UserID)
		}
	}

	askers, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		logger.Warn("Asker lookup failed", zap.Error(err))
		return
	}

	for i, q := range questions {
		if asker, ok := askers[q.UserID]; ok {
			responses[i].UserName = asker.FullName
		}
	}
}
