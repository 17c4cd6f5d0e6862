package collabs

import (
	"context"

	"melodex/internal/store"
)

// Store captures the persistence needs for collaboration workflows.
type Store interface {
	AddCollaboration(ctx context.Context, playlistID, userID string) (string, error)
	DeleteCollaboration(ctx context.Context, playlistID, userID string) error
	VerifyCollaborator(ctx context.Context, playlistID, userID string) error
}

// Users verifies that the user being granted access exists.
type Users interface {
	UserByID(ctx context.Context, id string) (store.User, error)
}

// Service coordinates playlist collaborator grants. Ownership of the target
// playlist is checked by the caller before either mutation.
type Service interface {
	Add(ctx context.Context, playlistID, userID string) (string, error)
	Remove(ctx context.Context, playlistID, userID string) error
	VerifyCollaborator(ctx context.Context, playlistID, userID string) error
}

type service struct {
	store Store
	users Users
}

// New constructs a Service backed by the provided Store and user lookup.
func New(store Store, users Users) Service {
	return &service{store: store, users: users}
}

func (s *service) Add(ctx context.Context, playlistID, userID string) (string, error) {
	if _, err := s.users.UserByID(ctx, userID); err != nil {
		return "", err
	}
	return s.store.AddCollaboration(ctx, playlistID, userID)
}

func (s *service) Remove(ctx context.Context, playlistID, userID string) error {
	return s.store.DeleteCollaboration(ctx, playlistID, userID)
}

func (s *service) VerifyCollaborator(ctx context.Context, playlistID, userID string) error {
	return s.store.VerifyCollaborator(ctx, playlistID, userID)
}
