package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCreatePlaylistRequiresName(t *testing.T) {
	s := New(nil)

	_, err := s.CreatePlaylist(context.Background(), "   ", "user-1")
	if !errors.Is(err, ErrInvalidPlaylist) {
		t.Fatalf("expected ErrInvalidPlaylist, got %v", err)
	}
}

func TestPlaylistsByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT playlists.id, playlists.name, users.username
		FROM playlists
		LEFT JOIN users ON users.id = playlists.owner
		WHERE playlists.owner = $1
		ORDER BY playlists.id ASC
	`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "username"}).
			AddRow("playlist-1", "Late Night", "tricky").
			AddRow("playlist-2", "Morning", "tricky"))

	playlists, err := s.PlaylistsByOwner(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("PlaylistsByOwner error: %v", err)
	}
	if len(playlists) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(playlists))
	}
	if playlists[0].Username != "tricky" {
		t.Fatalf("unexpected username: %q", playlists[0].Username)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetPlaylistNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, name, owner
		FROM playlists
		WHERE id = $1
	`)).
		WithArgs("playlist-missing").
		WillReturnError(sql.ErrNoRows)

	_, err = s.GetPlaylist(context.Background(), "playlist-missing")
	if !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestDeletePlaylistReturnsOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		DELETE FROM playlists
		WHERE id = $1
		RETURNING owner
	`)).
		WithArgs("playlist-1").
		WillReturnRows(sqlmock.NewRows([]string{"owner"}).AddRow("user-1"))

	owner, err := s.DeletePlaylist(context.Background(), "playlist-1")
	if err != nil {
		t.Fatalf("DeletePlaylist error: %v", err)
	}
	if owner != "user-1" {
		t.Fatalf("expected owner user-1, got %q", owner)
	}
}

func TestDeletePlaylistNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM playlists`)).
		WithArgs("playlist-missing").
		WillReturnError(sql.ErrNoRows)

	_, err = s.DeletePlaylist(context.Background(), "playlist-missing")
	if !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestPlaylistSongsEmptyIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT songs.id, songs.title, songs.performer
		FROM playlist_songs
		INNER JOIN songs ON songs.id = playlist_songs.song_id
		WHERE playlist_songs.playlist_id = $1
		ORDER BY playlist_songs.id ASC
	`)).
		WithArgs("playlist-empty").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "performer"}))

	_, err = s.PlaylistSongs(context.Background(), "playlist-empty")
	if !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestPlaylistSongs(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM playlist_songs`)).
		WithArgs("playlist-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "performer"}).
			AddRow("song-1", "Glory Box", "Portishead"))

	songs, err := s.PlaylistSongs(context.Background(), "playlist-1")
	if err != nil {
		t.Fatalf("PlaylistSongs error: %v", err)
	}
	if len(songs) != 1 || songs[0].ID != "song-1" {
		t.Fatalf("unexpected songs: %+v", songs)
	}
}

func TestRemovePlaylistSongNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`)).
		WithArgs("playlist-1", "song-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = s.RemovePlaylistSong(context.Background(), "playlist-1", "song-missing")
	if !errors.Is(err, ErrPlaylistSongNotFound) {
		t.Fatalf("expected ErrPlaylistSongNotFound, got %v", err)
	}
}
