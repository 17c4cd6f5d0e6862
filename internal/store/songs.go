package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Song represents a track in the catalog. AlbumID is nil for singles.
type Song struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Performer string  `json:"performer"`
	Genre     string  `json:"genre"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

// SongSummary is the shape used by song listings.
type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

// CreateSong inserts a new song and returns its generated id.
func (s *Store) CreateSong(ctx context.Context, song Song) (string, error) {
	if err := validateSong(song); err != nil {
		return "", err
	}

	id := newID("song")

	var duration any
	if song.Duration != nil {
		duration = *song.Duration
	}
	var albumID any
	if song.AlbumID != nil {
		albumID = *song.AlbumID
	}

	var inserted string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO songs (id, title, year, performer, genre, duration, album_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, id, strings.TrimSpace(song.Title), song.Year, strings.TrimSpace(song.Performer), song.Genre, duration, albumID).Scan(&inserted)
	if err != nil {
		return "", fmt.Errorf("insert song: %w", err)
	}
	if inserted == "" {
		return "", fmt.Errorf("%w: song was not created", ErrInvalidSong)
	}

	return inserted, nil
}

// ListSongs returns song summaries, optionally narrowed by case-insensitive
// substring matches on title and performer.
func (s *Store) ListSongs(ctx context.Context, title, performer string) ([]SongSummary, error) {
	query := `
		SELECT id, title, performer
		FROM songs
	`

	var (
		clauses []string
		args    []any
	)

	if title = strings.TrimSpace(title); title != "" {
		args = append(args, "%"+title+"%")
		clauses = append(clauses, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if performer = strings.TrimSpace(performer); performer != "" {
		args = append(args, "%"+performer+"%")
		clauses = append(clauses, fmt.Sprintf("performer ILIKE $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select songs: %w", err)
	}
	defer rows.Close()

	return scanSongSummaries(rows)
}

// SongsByAlbum returns the songs attached to an album.
func (s *Store) SongsByAlbum(ctx context.Context, albumID string) ([]SongSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, performer
		FROM songs
		WHERE album_id = $1
		ORDER BY id ASC
	`, albumID)
	if err != nil {
		return nil, fmt.Errorf("select album songs: %w", err)
	}
	defer rows.Close()

	return scanSongSummaries(rows)
}

// SongByID returns a single song by its identifier.
func (s *Store) SongByID(ctx context.Context, id string) (Song, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, year, performer, genre, duration, album_id
		FROM songs
		WHERE id = $1
	`, id)

	song, err := scanSongRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Song{}, ErrSongNotFound
		}
		return Song{}, err
	}
	return song, nil
}

// SongExists reports whether a song id is present, as ErrSongNotFound when absent.
func (s *Store) SongExists(ctx context.Context, id string) error {
	var found string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM songs WHERE id = $1`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSongNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup song: %w", err)
	}
	return nil
}

// UpdateSong replaces every mutable field of an existing song.
func (s *Store) UpdateSong(ctx context.Context, id string, song Song) error {
	if err := validateSong(song); err != nil {
		return err
	}

	var duration any
	if song.Duration != nil {
		duration = *song.Duration
	}
	var albumID any
	if song.AlbumID != nil {
		albumID = *song.AlbumID
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE songs
		SET title = $1, year = $2, performer = $3, genre = $4, duration = $5, album_id = $6
		WHERE id = $7
	`, strings.TrimSpace(song.Title), song.Year, strings.TrimSpace(song.Performer), song.Genre, duration, albumID, id)
	if err != nil {
		return fmt.Errorf("update song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// DeleteSong removes a song.
func (s *Store) DeleteSong(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

func validateSong(song Song) error {
	switch {
	case strings.TrimSpace(song.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidSong)
	case song.Year <= 0:
		return fmt.Errorf("%w: year must be positive", ErrInvalidSong)
	case strings.TrimSpace(song.Performer) == "":
		return fmt.Errorf("%w: performer is required", ErrInvalidSong)
	case strings.TrimSpace(song.Genre) == "":
		return fmt.Errorf("%w: genre is required", ErrInvalidSong)
	}
	return nil
}

func scanSongRow(scanner rowScanner) (Song, error) {
	var (
		song     Song
		duration sql.NullInt32
		albumID  sql.NullString
	)
	if err := scanner.Scan(&song.ID, &song.Title, &song.Year, &song.Performer, &song.Genre, &duration, &albumID); err != nil {
		return Song{}, fmt.Errorf("scan song: %w", err)
	}
	if duration.Valid {
		val := int(duration.Int32)
		song.Duration = &val
	}
	if albumID.Valid {
		song.AlbumID = &albumID.String
	}
	return song, nil
}

func scanSongSummaries(rows *sql.Rows) ([]SongSummary, error) {
	var songs []SongSummary
	for rows.Next() {
		var song SongSummary
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}
