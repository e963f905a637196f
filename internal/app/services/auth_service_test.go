package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akshat1423/scaleup-backend/internal/app/models/dto"
	"github.com/akshat1423/scaleup-backend/internal/pkg/apperrors"
	"github.com/akshat1423/scaleup-backend/internal/pkg/auth"
	"github.com/akshat1423/scaleup-backend/internal/pkg/cache"
)

func newAuthFixture(t *testing.T) (AuthService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	tokens := cache.NewMemory(time.Minute, time.Minute)
	t.Cleanup(func() { _ = tokens.Close() })

	return NewAuthService(&fakeUsers{store: store}, jwtService, tokens, testLogger()), store
}

func TestRegisterValidatesInput(t *testing.T) {
	service, _ := newAuthFixture(t)

	_, err := service.Register(context.Background(), &dto.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
		Name:     "",
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	details := apperrors.ValidationDetails(err)
	if len(details) != 3 {
		t.Fatalf("expected 3 collected problems, got %v", details)
	}
}

func TestRegisterLoginRefreshRoundTrip(t *testing.T) {
	service, _ := newAuthFixture(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, &dto.RegisterRequest{
		Email:    "ada@campus.edu",
		Password: "correct horse battery",
		Name:     "Ada",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registered.AccessToken == "" || registered.RefreshToken == "" {
		t.Fatalf("expected token pair, got %+v", registered)
	}

	// Duplicate registration is rejected
	if _, err := service.Register(ctx, &dto.RegisterRequest{
		Email:    "ada@campus.edu",
		Password: "correct horse battery",
		Name:     "Ada",
	}); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	logged, err := service.Login(ctx, &dto.LoginRequest{
		Email:    "ada@campus.edu",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.UserID != registered.UserID {
		t.Fatalf("login resolved a different user: %d vs %d", logged.UserID, registered.UserID)
	}

	refreshed, err := service.Refresh(ctx, logged.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.UserID != registered.UserID {
		t.Fatalf("refresh resolved a different user")
	}

	// A refresh token is single use
	if _, err := service.Refresh(ctx, logged.RefreshToken); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid reusing refresh token, got %v", err)
	}
}

func TestLoginHidesAccountExistence(t *testing.T) {
	service, _ := newAuthFixture(t)
	ctx := context.Background()

	if _, err := service.Login(ctx, &dto.LoginRequest{
		Email:    "nobody@campus.edu",
		Password: "whatever",
	}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown account, got %v", err)
	}

	if _, err := service.Register(ctx, &dto.RegisterRequest{
		Email:    "ada@campus.edu",
		Password: "correct horse battery",
		Name:     "Ada",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := service.Login(ctx, &dto.LoginRequest{
		Email:    "ada@campus.edu",
		Password: "wrong password",
	}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	service, _ := newAuthFixture(t)
	ctx := context.Background()

	registered, err := service.Register(ctx, &dto.RegisterRequest{
		Email:    "ada@campus.edu",
		Password: "correct horse battery",
		Name:     "Ada",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	service.Logout(ctx, registered.RefreshToken)

	if _, err := service.Refresh(ctx, registered.RefreshToken); !errors.Is(err, apperrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid after logout, got %v", err)
	}
}
