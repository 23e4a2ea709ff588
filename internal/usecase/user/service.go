package user

import (
	"context"
	"time"

	"ecotrade-marketplace/internal/config"
	domainUser "ecotrade-marketplace/internal/domain/user"
	"ecotrade-marketplace/internal/logger"
	appErrors "ecotrade-marketplace/pkg/errors"
	"ecotrade-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements account and authentication use cases
type Service struct {
	userRepo  domainUser.Repository
	tokenRepo domainUser.RefreshTokenRepository
	jwtConfig config.JWTConfig
}

// NewService creates a new user service
func NewService(
	userRepo domainUser.Repository,
	tokenRepo domainUser.RefreshTokenRepository,
	jwtConfig config.JWTConfig,
) *Service {
	return &Service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtConfig: jwtConfig,
	}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Password does not meet requirements", err)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	newUser := &domainUser.User{
		Email:          utils.SanitizeEmail(req.Email),
		PasswordHashed: hashed,
		FullName:       utils.SanitizeString(req.FullName),
		Phone:          utils.SanitizePhone(req.Phone),
		Location:       utils.SanitizeString(req.Location),
		Gender:         req.Gender,
		Role:           "user",
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	logger.Info("User registered",
		zap.String("user_id", newUser.ID.String()),
		zap.String("event", "user_registered"),
	)

	return s.issueTokens(ctx, newUser)
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	existing, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeUnauthorized, "Invalid email or password", appErrors.ErrInvalidCredentials)
	}

	if !utils.CheckPassword(existing.PasswordHashed, req.Password) {
		return nil, appErrors.NewAppError(appErrors.CodeUnauthorized, "Invalid email or password", appErrors.ErrInvalidCredentials)
	}

	logger.Info("User logged in",
		zap.String("user_id", existing.ID.String()),
		zap.String("event", "user_login"),
	)

	return s.issueTokens(ctx, existing)
}

func (s *Service) RefreshToken(ctx context.Context, req *RefreshTokenRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	stored, err := s.tokenRepo.GetByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeUnauthorized, "Invalid refresh token", appErrors.ErrInvalidToken)
	}

	if !stored.IsActive() {
		return nil, appErrors.NewAppError(appErrors.CodeUnauthorized, "Refresh token expired or revoked", appErrors.ErrInvalidToken)
	}

	owner, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}

	// Rotate: the old token stops working as soon as a new pair is issued
	if err := s.tokenRepo.Revoke(ctx, stored.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, owner)
}

func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		return err
	}

	logger.Info("User logged out",
		zap.String("user_id", userID.String()),
		zap.String("event", "user_logout"),
	)

	return nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// GetPublicProfile returns another user's profile for display on listings.
func (s *Service) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := ToUserResponse(u)
	resp.Email = ""
	resp.Phone = ""
	return resp, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError(appErrors.CodeValidation, "Invalid input", err)
	}

	existing, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		existing.FullName = utils.SanitizeString(*req.FullName)
	}
	if req.Phone != nil {
		existing.Phone = utils.SanitizePhone(*req.Phone)
	}
	if req.Location != nil {
		existing.Location = utils.SanitizeString(*req.Location)
	}
	if req.Gender != nil {
		existing.Gender = *req.Gender
	}
	if req.ProfilePicture != nil {
		existing.ProfilePicture = req.ProfilePicture
	}

	if err := s.userRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.Info("Profile updated",
		zap.String("user_id", userID.String()),
		zap.String("event", "profile_updated"),
	)

	return ToUserResponse(updated), nil
}

func (s *Service) issueTokens(ctx context.Context, u *domainUser.User) (*AuthResponse, error) {
	pair, err := utils.GenerateTokenPair(
		u.ID, u.Email, u.Role,
		s.jwtConfig.Secret, s.jwtConfig.ExpiryHours, s.jwtConfig.RefreshExpiryHours,
	)
	if err != nil {
		return nil, err
	}

	refreshExpiry := s.jwtConfig.RefreshExpiryHours
	if refreshExpiry <= 0 {
		refreshExpiry = 24 * 7
	}

	stored := &domainUser.RefreshToken{
		UserID:    u.ID,
		Token:     pair.RefreshToken,
		ExpiresAt: time.Now().Add(time.Duration(refreshExpiry) * time.Hour),
	}
	if err := s.tokenRepo.Create(ctx, stored); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         ToUserResponse(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}, nil
}
