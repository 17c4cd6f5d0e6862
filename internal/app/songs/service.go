package songs

import (
	"context"
	"encoding/json"

	"melodex/internal/cache"
	"melodex/internal/store"
)

// Store captures the persistence needs for song workflows.
type Store interface {
	CreateSong(ctx context.Context, song store.Song) (string, error)
	ListSongs(ctx context.Context, title, performer string) ([]store.SongSummary, error)
	SongByID(ctx context.Context, id string) (store.Song, error)
	UpdateSong(ctx context.Context, id string, song store.Song) error
	DeleteSong(ctx context.Context, id string) error
}

// Service coordinates song-related operations.
type Service interface {
	Create(ctx context.Context, song store.Song) (string, error)
	List(ctx context.Context, title, performer string) ([]store.SongSummary, error)
	Get(ctx context.Context, id string) (store.Song, error)
	Update(ctx context.Context, id string, song store.Song) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	store Store
	cache cache.Cache
}

// New constructs a Service backed by the provided Store and Cache.
func New(store Store, cache cache.Cache) Service {
	return &service{store: store, cache: cache}
}

// Create inserts a song. When the song belongs to an album, that album's
// cached song list goes stale and gets evicted. The song's own key needs no
// eviction: the id is freshly generated, so nothing can be cached under it.
func (s *service) Create(ctx context.Context, song store.Song) (string, error) {
	id, err := s.store.CreateSong(ctx, song)
	if err != nil {
		return "", err
	}

	if song.AlbumID != nil {
		_ = s.cache.Delete(ctx, cache.AlbumSongsKey(*song.AlbumID))
	}
	return id, nil
}

// List searches songs by title/performer. Listings are not cached; every
// filter combination would need its own key and the query is cheap.
func (s *service) List(ctx context.Context, title, performer string) ([]store.SongSummary, error) {
	return s.store.ListSongs(ctx, title, performer)
}

func (s *service) Get(ctx context.Context, id string) (store.Song, error) {
	key := cache.SongKey(id)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var song store.Song
		if err := json.Unmarshal([]byte(raw), &song); err == nil {
			return song, nil
		}
	}

	song, err := s.store.SongByID(ctx, id)
	if err != nil {
		return store.Song{}, err
	}

	if buf, err := json.Marshal(song); err == nil {
		_ = s.cache.Set(ctx, key, string(buf))
	}
	return song, nil
}

func (s *service) Update(ctx context.Context, id string, song store.Song) error {
	if err := s.store.UpdateSong(ctx, id, song); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cache.SongKey(id))
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteSong(ctx, id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, cache.SongKey(id))
	return nil
}
