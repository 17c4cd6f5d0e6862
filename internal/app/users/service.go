package users

import (
	"context"

	"melodex/internal/auth"
	"melodex/internal/store"
)

// Store captures the persistence needs for account workflows.
type Store interface {
	CreateUser(ctx context.Context, username, password, fullname string) (string, error)
	VerifyCredentials(ctx context.Context, username, password string) (string, error)
	AddRefreshToken(ctx context.Context, token string) error
	VerifyRefreshToken(ctx context.Context, token string) error
	DeleteRefreshToken(ctx context.Context, token string) error
}

// Service coordinates registration and session workflows.
type Service interface {
	Signup(ctx context.Context, username, password, fullname string) (string, error)
	Login(ctx context.Context, username, password string) (access, refresh string, err error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

type service struct {
	store  Store
	tokens *auth.TokenManager
}

// New constructs a Service backed by the provided Store and token manager.
func New(store Store, tokens *auth.TokenManager) Service {
	return &service{store: store, tokens: tokens}
}

func (s *service) Signup(ctx context.Context, username, password, fullname string) (string, error) {
	return s.store.CreateUser(ctx, username, password, fullname)
}

// Login validates credentials and issues an access/refresh token pair. The
// refresh token is persisted so it can later be rotated or revoked.
func (s *service) Login(ctx context.Context, username, password string) (string, string, error) {
	userID, err := s.store.VerifyCredentials(ctx, username, password)
	if err != nil {
		return "", "", err
	}

	access, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", err
	}

	if err := s.store.AddRefreshToken(ctx, refresh); err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// Refresh exchanges a persisted refresh token for a new access token.
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if err := s.store.VerifyRefreshToken(ctx, refreshToken); err != nil {
		return "", err
	}

	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", store.ErrInvalidRefreshToken
	}

	return s.tokens.GenerateAccessToken(userID)
}

// Logout revokes a refresh token.
func (s *service) Logout(ctx context.Context, refreshToken string) error {
	return s.store.DeleteRefreshToken(ctx, refreshToken)
}
