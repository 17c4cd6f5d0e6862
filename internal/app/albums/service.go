package albums

import (
	"context"
	"encoding/json"
	"strconv"

	"melodex/internal/cache"
	"melodex/internal/store"
)

// Store captures the persistence needs for album workflows.
type Store interface {
	CreateAlbum(ctx context.Context, name string, year int) (string, error)
	AlbumByID(ctx context.Context, id string) (store.Album, error)
	UpdateAlbum(ctx context.Context, id, name string, year int) error
	DeleteAlbum(ctx context.Context, id string) error
	SetAlbumCover(ctx context.Context, id, coverURL string) error
	SongsByAlbum(ctx context.Context, albumID string) ([]store.SongSummary, error)
	HasAlbumLike(ctx context.Context, albumID, userID string) (bool, error)
	InsertAlbumLike(ctx context.Context, albumID, userID string) error
	DeleteAlbumLike(ctx context.Context, albumID, userID string) error
	CountAlbumLikes(ctx context.Context, albumID string) (int, error)
}

// Service coordinates album-related operations, including the read-through
// cache and its invalidation.
type Service interface {
	Create(ctx context.Context, name string, year int) (string, error)
	Get(ctx context.Context, id string) (store.Album, error)
	Songs(ctx context.Context, albumID string) ([]store.SongSummary, error)
	Update(ctx context.Context, id, name string, year int) error
	Delete(ctx context.Context, id string) error
	SetCover(ctx context.Context, id, coverURL string) error
	ToggleLike(ctx context.Context, albumID, userID string) error
	Likes(ctx context.Context, albumID string) (int, bool, error)
}

type service struct {
	store Store
	cache cache.Cache
}

// New constructs a Service backed by the provided Store and Cache.
func New(store Store, cache cache.Cache) Service {
	return &service{store: store, cache: cache}
}

func (s *service) Create(ctx context.Context, name string, year int) (string, error) {
	// Fresh ids cannot collide with anything cached, so no eviction here.
	return s.store.CreateAlbum(ctx, name, year)
}

func (s *service) Get(ctx context.Context, id string) (store.Album, error) {
	key := cache.AlbumKey(id)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var album store.Album
		if err := json.Unmarshal([]byte(raw), &album); err == nil {
			return album, nil
		}
	}

	album, err := s.store.AlbumByID(ctx, id)
	if err != nil {
		return store.Album{}, err
	}

	if buf, err := json.Marshal(album); err == nil {
		_ = s.cache.Set(ctx, key, string(buf))
	}
	return album, nil
}

func (s *service) Songs(ctx context.Context, albumID string) ([]store.SongSummary, error) {
	key := cache.AlbumSongsKey(albumID)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var songs []store.SongSummary
		if err := json.Unmarshal([]byte(raw), &songs); err == nil {
			return songs, nil
		}
	}

	songs, err := s.store.SongsByAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}

	if buf, err := json.Marshal(songs); err == nil {
		_ = s.cache.Set(ctx, key, string(buf))
	}
	return songs, nil
}

func (s *service) Update(ctx context.Context, id, name string, year int) error {
	if err := s.store.UpdateAlbum(ctx, id, name, year); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cache.AlbumKey(id))
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteAlbum(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cache.AlbumKey(id))
	return nil
}

func (s *service) SetCover(ctx context.Context, id, coverURL string) error {
	if err := s.store.SetAlbumCover(ctx, id, coverURL); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cache.AlbumKey(id))
	return nil
}

// ToggleLike flips the like state for the (album, user) pair: absent inserts,
// present deletes. Two consecutive calls return the pair to its original state.
func (s *service) ToggleLike(ctx context.Context, albumID, userID string) error {
	liked, err := s.store.HasAlbumLike(ctx, albumID, userID)
	if err != nil {
		return err
	}

	if liked {
		err = s.store.DeleteAlbumLike(ctx, albumID, userID)
	} else {
		err = s.store.InsertAlbumLike(ctx, albumID, userID)
	}
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, cache.LikesKey(albumID))
	return nil
}

// Likes returns the like count for an album and whether it was served from
// cache. Both paths cache and return the count; a cached value that does not
// parse as an integer counts as a miss.
func (s *service) Likes(ctx context.Context, albumID string) (int, bool, error) {
	key := cache.LikesKey(albumID)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		if count, err := strconv.Atoi(raw); err == nil {
			return count, true, nil
		}
	}

	count, err := s.store.CountAlbumLikes(ctx, albumID)
	if err != nil {
		return 0, false, err
	}

	_ = s.cache.Set(ctx, key, strconv.Itoa(count))
	return count, false, nil
}
