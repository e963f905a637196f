package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/akshat1423/scaleup-backend/internal/app/models"
	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
	"github.com/akshat1423/scaleup-backend/internal/pkg/auth"
	"github.com/akshat1423/scaleup-backend/internal/pkg/cache"
	"github.com/akshat1423/scaleup-backend/internal/pkg/validation"
)

// AuthService defines the interface for registration and authentication
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string)
}

type credentialStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// authServiceImpl implements AuthService. Refresh tokens are opaque values
// kept in the cache with the refresh expiry as their TTL.
type authServiceImpl struct {
	userRepo   credentialStore
	jwtService *auth.JWTService
	tokens     cache.Cache
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo credentialStore, jwtService *auth.JWTService, tokens cache.Cache, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokens:     tokens,
		logger:     logger,
	}
}

func refreshTokenKey(token string) string {
	return "auth:refresh:" + token
}

// Register creates a new account and signs the user in
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	problems := make(map[string]string)
	if !validation.ValidEmail(req.Email) {
		problems["email"] = "is not a valid email address"
	}
	if len(req.Password) < validation.PasswordMinLength {
		problems["password"] = fmt.Sprintf("must be at least %d characters", validation.PasswordMinLength)
	}
	if req.Name == "" {
		problems["name"] = "cannot be empty"
	}
	if len(problems) > 0 {
		return nil, apperrors.NewValidationError(problems)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:           req.Email,
		Password:        hashed,
		Name:            req.Name,
		PrivacySettings: map[string]string{},
	}
	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.logger.Info().
		Int64("userId", id).
		Str("email", req.Email).
		Msg("User registered")

	return s.issueTokens(user)
}

// Login verifies credentials and signs the user in
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Hide whether the account exists
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new token pair. The used
// token is revoked.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	var userID int64
	if !s.tokens.Get(refreshTokenKey(refreshToken), &userID) {
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	s.tokens.Delete(refreshTokenKey(refreshToken))
	return s.issueTokens(user)
}

// Logout revokes a refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) {
	s.tokens.Delete(refreshTokenKey(refreshToken))
}

func (s *authServiceImpl) issueTokens(user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	ttl := time.Until(s.jwtService.GetRefreshTokenExpiry())
	s.tokens.Set(refreshTokenKey(refreshToken), user.ID, ttl)

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(expiresIn),
		UserID:       user.ID,
	}, nil
}
