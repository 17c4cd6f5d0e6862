package albums

import (
	"context"
	"errors"
	"testing"

	"melodex/internal/cache"
	"melodex/internal/store"
)

type fakeStore struct {
	albums map[string]store.Album
	songs  map[string][]store.SongSummary
	likes  map[string]map[string]bool

	albumCalls int
	countCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		albums: map[string]store.Album{},
		songs:  map[string][]store.SongSummary{},
		likes:  map[string]map[string]bool{},
	}
}

func (f *fakeStore) CreateAlbum(_ context.Context, name string, year int) (string, error) {
	id := "album-new"
	f.albums[id] = store.Album{ID: id, Name: name, Year: year}
	return id, nil
}

func (f *fakeStore) AlbumByID(_ context.Context, id string) (store.Album, error) {
	f.albumCalls++
	album, ok := f.albums[id]
	if !ok {
		return store.Album{}, store.ErrAlbumNotFound
	}
	return album, nil
}

func (f *fakeStore) UpdateAlbum(_ context.Context, id, name string, year int) error {
	album, ok := f.albums[id]
	if !ok {
		return store.ErrAlbumNotFound
	}
	album.Name = name
	album.Year = year
	f.albums[id] = album
	return nil
}

func (f *fakeStore) DeleteAlbum(_ context.Context, id string) error {
	if _, ok := f.albums[id]; !ok {
		return store.ErrAlbumNotFound
	}
	delete(f.albums, id)
	return nil
}

func (f *fakeStore) SetAlbumCover(_ context.Context, id, coverURL string) error {
	album, ok := f.albums[id]
	if !ok {
		return store.ErrAlbumNotFound
	}
	album.CoverURL = &coverURL
	f.albums[id] = album
	return nil
}

func (f *fakeStore) SongsByAlbum(_ context.Context, albumID string) ([]store.SongSummary, error) {
	return f.songs[albumID], nil
}

func (f *fakeStore) HasAlbumLike(_ context.Context, albumID, userID string) (bool, error) {
	return f.likes[albumID][userID], nil
}

func (f *fakeStore) InsertAlbumLike(_ context.Context, albumID, userID string) error {
	if f.likes[albumID] == nil {
		f.likes[albumID] = map[string]bool{}
	}
	if f.likes[albumID][userID] {
		return store.ErrLikeExists
	}
	f.likes[albumID][userID] = true
	return nil
}

func (f *fakeStore) DeleteAlbumLike(_ context.Context, albumID, userID string) error {
	if !f.likes[albumID][userID] {
		return store.ErrInvalidLike
	}
	delete(f.likes[albumID], userID)
	return nil
}

func (f *fakeStore) CountAlbumLikes(_ context.Context, albumID string) (int, error) {
	f.countCalls++
	return len(f.likes[albumID]), nil
}

type fakeCache struct {
	entries map[string]string
	deleted []string
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.entries[key]
	if !ok {
		return "", cache.ErrNotCached
	}
	return value, nil
}

func (f *fakeCache) Set(_ context.Context, key, value string) error {
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) deletedKey(key string) bool {
	for _, k := range f.deleted {
		if k == key {
			return true
		}
	}
	return false
}

func TestGetPopulatesCache(t *testing.T) {
	st := newFakeStore()
	st.albums["album-1"] = store.Album{ID: "album-1", Name: "Mezzanine", Year: 1998}
	c := newFakeCache()
	svc := New(st, c)

	album, err := svc.Get(context.Background(), "album-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if album.Name != "Mezzanine" {
		t.Fatalf("unexpected album: %+v", album)
	}
	if _, ok := c.entries[cache.AlbumKey("album-1")]; !ok {
		t.Fatal("expected album to be cached after miss")
	}
	if st.albumCalls != 1 {
		t.Fatalf("expected 1 store call, got %d", st.albumCalls)
	}
}

func TestGetCacheHitSkipsStore(t *testing.T) {
	st := newFakeStore()
	c := newFakeCache()
	c.entries[cache.AlbumKey("album-1")] = `{"id":"album-1","name":"Mezzanine","year":1998,"coverUrl":null}`
	svc := New(st, c)

	album, err := svc.Get(context.Background(), "album-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if album.Name != "Mezzanine" || album.Year != 1998 {
		t.Fatalf("unexpected album: %+v", album)
	}
	if st.albumCalls != 0 {
		t.Fatalf("expected cache hit to skip the store, saw %d calls", st.albumCalls)
	}
}

func TestGetCorruptEntryFallsThrough(t *testing.T) {
	st := newFakeStore()
	st.albums["album-1"] = store.Album{ID: "album-1", Name: "Mezzanine", Year: 1998}
	c := newFakeCache()
	c.entries[cache.AlbumKey("album-1")] = "{not json"
	svc := New(st, c)

	album, err := svc.Get(context.Background(), "album-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if album.Name != "Mezzanine" {
		t.Fatalf("unexpected album: %+v", album)
	}
	if st.albumCalls != 1 {
		t.Fatalf("expected corrupt entry to hit the store, saw %d calls", st.albumCalls)
	}
}

func TestGetCacheFailureFallsThrough(t *testing.T) {
	st := newFakeStore()
	st.albums["album-1"] = store.Album{ID: "album-1", Name: "Mezzanine", Year: 1998}
	c := newFakeCache()
	c.getErr = errors.New("cache offline")
	svc := New(st, c)

	if _, err := svc.Get(context.Background(), "album-1"); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if st.albumCalls != 1 {
		t.Fatalf("expected cache failure to hit the store, saw %d calls", st.albumCalls)
	}
}

func TestGetNotFoundDoesNotCache(t *testing.T) {
	st := newFakeStore()
	c := newFakeCache()
	svc := New(st, c)

	_, err := svc.Get(context.Background(), "album-missing")
	if !errors.Is(err, store.ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
	if len(c.entries) != 0 {
		t.Fatalf("expected nothing cached on not-found, got %v", c.entries)
	}
}

func TestUpdateInvalidatesCache(t *testing.T) {
	st := newFakeStore()
	st.albums["album-1"] = store.Album{ID: "album-1", Name: "Mezzanine", Year: 1998}
	c := newFakeCache()
	c.entries[cache.AlbumKey("album-1")] = "stale"
	svc := New(st, c)

	if err := svc.Update(context.Background(), "album-1", "Mezzanine (Remaster)", 2018); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if !c.deletedKey(cache.AlbumKey("album-1")) {
		t.Fatal("expected album key to be evicted on update")
	}
}

func TestUpdateNotFoundSkipsEviction(t *testing.T) {
	st := newFakeStore()
	c := newFakeCache()
	svc := New(st, c)

	err := svc.Update(context.Background(), "album-missing", "x", 2000)
	if !errors.Is(err, store.ErrAlbumNotFound) {
		t.Fatalf("expected ErrAlbumNotFound, got %v", err)
	}
	if len(c.deleted) != 0 {
		t.Fatalf("expected no eviction on failed update, got %v", c.deleted)
	}
}

func TestDeleteInvalidatesCache(t *testing.T) {
	st := newFakeStore()
	st.albums["album-1"] = store.Album{ID: "album-1", Name: "Mezzanine", Year: 1998}
	c := newFakeCache()
	svc := New(st, c)

	if err := svc.Delete(context.Background(), "album-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if !c.deletedKey(cache.AlbumKey("album-1")) {
		t.Fatal("expected album key to be evicted on delete")
	}
}

func TestSetCoverInvalidatesCache(t *testing.T) {
	st := newFakeStore()
	st.albums["album-1"] = store.Album{ID: "album-1", Name: "Mezzanine", Year: 1998}
	c := newFakeCache()
	svc := New(st, c)

	if err := svc.SetCover(context.Background(), "album-1", "http://localhost:8080/albums/covers/x.jpg"); err != nil {
		t.Fatalf("SetCover error: %v", err)
	}
	if !c.deletedKey(cache.AlbumKey("album-1")) {
		t.Fatal("expected album key to be evicted on cover change")
	}
}

func TestToggleLikeRoundTrip(t *testing.T) {
	st := newFakeStore()
	st.albums["album-1"] = store.Album{ID: "album-1"}
	c := newFakeCache()
	svc := New(st, c)
	ctx := context.Background()

	if err := svc.ToggleLike(ctx, "album-1", "user-1"); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !st.likes["album-1"]["user-1"] {
		t.Fatal("expected like to be recorded")
	}

	if err := svc.ToggleLike(ctx, "album-1", "user-1"); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if st.likes["album-1"]["user-1"] {
		t.Fatal("expected second toggle to remove the like")
	}

	if !c.deletedKey(cache.LikesKey("album-1")) {
		t.Fatal("expected likes key to be evicted on toggle")
	}
}

func TestLikesColdThenWarm(t *testing.T) {
	st := newFakeStore()
	st.likes["album-1"] = map[string]bool{"user-1": true, "user-2": true}
	c := newFakeCache()
	svc := New(st, c)
	ctx := context.Background()

	count, fromCache, err := svc.Likes(ctx, "album-1")
	if err != nil {
		t.Fatalf("Likes error: %v", err)
	}
	if count != 2 || fromCache {
		t.Fatalf("expected cold read of 2, got count=%d fromCache=%v", count, fromCache)
	}
	if got := c.entries[cache.LikesKey("album-1")]; got != "2" {
		t.Fatalf("expected count cached as %q, got %q", "2", got)
	}

	count, fromCache, err = svc.Likes(ctx, "album-1")
	if err != nil {
		t.Fatalf("Likes error: %v", err)
	}
	if count != 2 || !fromCache {
		t.Fatalf("expected warm read of 2, got count=%d fromCache=%v", count, fromCache)
	}
	if st.countCalls != 1 {
		t.Fatalf("expected one store count, got %d", st.countCalls)
	}
}

func TestLikesUnparsableEntryIsMiss(t *testing.T) {
	st := newFakeStore()
	st.likes["album-1"] = map[string]bool{"user-1": true}
	c := newFakeCache()
	c.entries[cache.LikesKey("album-1")] = "not-a-number"
	svc := New(st, c)

	count, fromCache, err := svc.Likes(context.Background(), "album-1")
	if err != nil {
		t.Fatalf("Likes error: %v", err)
	}
	if count != 1 || fromCache {
		t.Fatalf("expected store read of 1, got count=%d fromCache=%v", count, fromCache)
	}
}
