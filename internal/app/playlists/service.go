package playlists

import (
	"context"
	"encoding/json"
	"errors"

	"melodex/internal/cache"
	"melodex/internal/store"
)

// Store captures the persistence needs for playlist workflows.
type Store interface {
	CreatePlaylist(ctx context.Context, name, owner string) (string, error)
	PlaylistsByOwner(ctx context.Context, owner string) ([]store.PlaylistSummary, error)
	PlaylistByID(ctx context.Context, id string) (store.PlaylistSummary, error)
	GetPlaylist(ctx context.Context, id string) (store.Playlist, error)
	DeletePlaylist(ctx context.Context, id string) (string, error)
	AddPlaylistSong(ctx context.Context, playlistID, songID string) (string, error)
	PlaylistSongs(ctx context.Context, playlistID string) ([]store.SongSummary, error)
	RemovePlaylistSong(ctx context.Context, playlistID, songID string) error
	SongExists(ctx context.Context, id string) error
}

// Collaborations is the external check consulted when ownership fails.
type Collaborations interface {
	VerifyCollaborator(ctx context.Context, playlistID, userID string) error
}

// Service coordinates playlist-related operations and access checks.
type Service interface {
	Create(ctx context.Context, name, owner string) (string, error)
	ListByOwner(ctx context.Context, owner string) ([]store.PlaylistSummary, error)
	Get(ctx context.Context, id string) (store.PlaylistSummary, error)
	Delete(ctx context.Context, id string) error
	AddSong(ctx context.Context, playlistID, songID string) (string, error)
	Songs(ctx context.Context, playlistID string) ([]store.SongSummary, error)
	RemoveSong(ctx context.Context, playlistID, songID string) error
	VerifyOwner(ctx context.Context, playlistID, userID string) error
	VerifyAccess(ctx context.Context, playlistID, userID string) error
}

type service struct {
	store   Store
	cache   cache.Cache
	collabs Collaborations
}

// New constructs a Service backed by the provided Store, Cache and
// collaboration check.
func New(store Store, cache cache.Cache, collabs Collaborations) Service {
	return &service{store: store, cache: cache, collabs: collabs}
}

func (s *service) Create(ctx context.Context, name, owner string) (string, error) {
	id, err := s.store.CreatePlaylist(ctx, name, owner)
	if err != nil {
		return "", err
	}
	_ = s.cache.Delete(ctx, cache.PlaylistsKey(owner))
	return id, nil
}

func (s *service) ListByOwner(ctx context.Context, owner string) ([]store.PlaylistSummary, error) {
	key := cache.PlaylistsKey(owner)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var playlists []store.PlaylistSummary
		if err := json.Unmarshal([]byte(raw), &playlists); err == nil {
			return playlists, nil
		}
	}

	playlists, err := s.store.PlaylistsByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	if buf, err := json.Marshal(playlists); err == nil {
		_ = s.cache.Set(ctx, key, string(buf))
	}
	return playlists, nil
}

func (s *service) Get(ctx context.Context, id string) (store.PlaylistSummary, error) {
	key := cache.PlaylistKey(id)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var playlist store.PlaylistSummary
		if err := json.Unmarshal([]byte(raw), &playlist); err == nil {
			return playlist, nil
		}
	}

	playlist, err := s.store.PlaylistByID(ctx, id)
	if err != nil {
		return store.PlaylistSummary{}, err
	}

	if buf, err := json.Marshal(playlist); err == nil {
		_ = s.cache.Set(ctx, key, string(buf))
	}
	return playlist, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	owner, err := s.store.DeletePlaylist(ctx, id)
	if err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cache.PlaylistsKey(owner))
	_ = s.cache.Delete(ctx, cache.PlaylistKey(id))
	return nil
}

// AddSong attaches an existing song to the playlist. Access must already be
// verified by the caller.
func (s *service) AddSong(ctx context.Context, playlistID, songID string) (string, error) {
	if err := s.store.SongExists(ctx, songID); err != nil {
		return "", err
	}

	id, err := s.store.AddPlaylistSong(ctx, playlistID, songID)
	if err != nil {
		return "", err
	}

	_ = s.cache.Delete(ctx, cache.PlaylistSongsKey(playlistID))
	return id, nil
}

func (s *service) Songs(ctx context.Context, playlistID string) ([]store.SongSummary, error) {
	key := cache.PlaylistSongsKey(playlistID)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var songs []store.SongSummary
		if err := json.Unmarshal([]byte(raw), &songs); err == nil {
			return songs, nil
		}
	}

	songs, err := s.store.PlaylistSongs(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if buf, err := json.Marshal(songs); err == nil {
		_ = s.cache.Set(ctx, key, string(buf))
	}
	return songs, nil
}

func (s *service) RemoveSong(ctx context.Context, playlistID, songID string) error {
	if err := s.store.RemovePlaylistSong(ctx, playlistID, songID); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cache.PlaylistSongsKey(playlistID))
	return nil
}

// VerifyOwner loads the playlist straight from the store (never the cache)
// and checks the caller owns it.
func (s *service) VerifyOwner(ctx context.Context, playlistID, userID string) error {
	playlist, err := s.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return err
	}
	if playlist.Owner != userID {
		return store.ErrForbidden
	}
	return nil
}

// VerifyAccess admits the owner or a collaborator. A missing playlist
// propagates immediately; a third party gets the same authorization failure
// whichever check rejected them.
func (s *service) VerifyAccess(ctx context.Context, playlistID, userID string) error {
	err := s.VerifyOwner(ctx, playlistID, userID)
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrPlaylistNotFound) {
		return err
	}
	if s.collabs != nil && s.collabs.VerifyCollaborator(ctx, playlistID, userID) == nil {
		return nil
	}
	return err
}
