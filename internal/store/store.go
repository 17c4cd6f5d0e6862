package store

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrAlbumNotFound signals a missing album record.
	ErrAlbumNotFound = errors.New("album not found")
	// ErrSongNotFound signals a missing song record.
	ErrSongNotFound = errors.New("song not found")
	// ErrPlaylistNotFound signals a missing playlist record.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrPlaylistSongNotFound signals a song that is not part of the playlist.
	ErrPlaylistSongNotFound = errors.New("song not found in playlist")
	// ErrUserNotFound signals a missing user record.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidAlbum indicates validation failure or a rejected album write.
	ErrInvalidAlbum = errors.New("invalid album")
	// ErrInvalidSong indicates validation failure or a rejected song write.
	ErrInvalidSong = errors.New("invalid song")
	// ErrInvalidPlaylist indicates validation failure or a rejected playlist write.
	ErrInvalidPlaylist = errors.New("invalid playlist")
	// ErrInvalidLike indicates a like write that affected no rows.
	ErrInvalidLike = errors.New("invalid like")
	// ErrLikeExists indicates the (album, user) pair is already liked.
	ErrLikeExists = errors.New("album already liked")

	// ErrForbidden indicates the caller lacks rights over a playlist.
	ErrForbidden = errors.New("access to playlist denied")

	// ErrUserExists signals the username is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidRefreshToken indicates an unknown refresh token.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrCollaborationNotFound signals a missing collaboration record.
	ErrCollaborationNotFound = errors.New("collaboration not found")
)

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// newID generates a prefixed surrogate id, e.g. "album-4f3c…".
func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
