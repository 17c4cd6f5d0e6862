package collabs

import (
	"context"
	"errors"
	"testing"

	"melodex/internal/store"
)

type fakeStore struct {
	grants map[string]map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{grants: map[string]map[string]bool{}}
}

func (f *fakeStore) AddCollaboration(_ context.Context, playlistID, userID string) (string, error) {
	if f.grants[playlistID] == nil {
		f.grants[playlistID] = map[string]bool{}
	}
	f.grants[playlistID][userID] = true
	return "collab-new", nil
}

func (f *fakeStore) DeleteCollaboration(_ context.Context, playlistID, userID string) error {
	if !f.grants[playlistID][userID] {
		return store.ErrCollaborationNotFound
	}
	delete(f.grants[playlistID], userID)
	return nil
}

func (f *fakeStore) VerifyCollaborator(_ context.Context, playlistID, userID string) error {
	if !f.grants[playlistID][userID] {
		return store.ErrForbidden
	}
	return nil
}

type fakeUsers struct {
	known map[string]bool
}

func (f *fakeUsers) UserByID(_ context.Context, id string) (store.User, error) {
	if !f.known[id] {
		return store.User{}, store.ErrUserNotFound
	}
	return store.User{ID: id}, nil
}

func TestAddRequiresExistingUser(t *testing.T) {
	svc := New(newFakeStore(), &fakeUsers{known: map[string]bool{}})

	_, err := svc.Add(context.Background(), "playlist-1", "user-missing")
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAddAndVerify(t *testing.T) {
	st := newFakeStore()
	svc := New(st, &fakeUsers{known: map[string]bool{"user-2": true}})
	ctx := context.Background()

	id, err := svc.Add(ctx, "playlist-1", "user-2")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if id == "" {
		t.Fatal("expected a collaboration id")
	}

	if err := svc.VerifyCollaborator(ctx, "playlist-1", "user-2"); err != nil {
		t.Fatalf("expected collaborator to verify, got %v", err)
	}
	if err := svc.VerifyCollaborator(ctx, "playlist-1", "user-3"); !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
}

func TestRemoveRevokesAccess(t *testing.T) {
	st := newFakeStore()
	svc := New(st, &fakeUsers{known: map[string]bool{"user-2": true}})
	ctx := context.Background()

	if _, err := svc.Add(ctx, "playlist-1", "user-2"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Remove(ctx, "playlist-1", "user-2"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := svc.VerifyCollaborator(ctx, "playlist-1", "user-2"); !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("expected access revoked, got %v", err)
	}
}

func TestRemoveUnknownGrant(t *testing.T) {
	svc := New(newFakeStore(), &fakeUsers{})

	err := svc.Remove(context.Background(), "playlist-1", "user-2")
	if !errors.Is(err, store.ErrCollaborationNotFound) {
		t.Fatalf("expected ErrCollaborationNotFound, got %v", err)
	}
}
