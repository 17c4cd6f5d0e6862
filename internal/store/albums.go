package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Album models a record in the catalog.
type Album struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Year     int     `json:"year"`
	CoverURL *string `json:"coverUrl"`
}

// CreateAlbum inserts a new album and returns its generated id.
func (s *Store) CreateAlbum(ctx context.Context, name string, year int) (string, error) {
	if err := validateAlbum(name, year); err != nil {
		return "", err
	}

	id := newID("album")

	var inserted string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO albums (id, name, year)
		VALUES ($1, $2, $3)
		RETURNING id
	`, id, strings.TrimSpace(name), year).Scan(&inserted)
	if err != nil {
		return "", fmt.Errorf("insert album: %w", err)
	}
	if inserted == "" {
		return "", fmt.Errorf("%w: album was not created", ErrInvalidAlbum)
	}

	return inserted, nil
}

// AlbumByID returns a single album by its identifier.
func (s *Store) AlbumByID(ctx context.Context, id string) (Album, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, year, "coverUrl"
		FROM albums
		WHERE id = $1
	`, id)

	album, err := scanAlbumRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Album{}, ErrAlbumNotFound
		}
		return Album{}, err
	}
	return album, nil
}

// UpdateAlbum replaces the name and year of an existing album.
func (s *Store) UpdateAlbum(ctx context.Context, id, name string, year int) error {
	if err := validateAlbum(name, year); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE albums
		SET name = $1, year = $2
		WHERE id = $3
	`, strings.TrimSpace(name), year, id)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// DeleteAlbum removes an album. Dependent songs and likes go with it via
// the FK cascades declared in the migrations.
func (s *Store) DeleteAlbum(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

// SetAlbumCover stores the location of an uploaded cover image.
func (s *Store) SetAlbumCover(ctx context.Context, id, coverURL string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE albums
		SET "coverUrl" = $1
		WHERE id = $2
	`, coverURL, id)
	if err != nil {
		return fmt.Errorf("set album cover: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAlbumNotFound
	}
	return nil
}

func validateAlbum(name string, year int) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidAlbum)
	case year <= 0:
		return fmt.Errorf("%w: year must be positive", ErrInvalidAlbum)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlbumRow(scanner rowScanner) (Album, error) {
	var (
		a     Album
		cover sql.NullString
	)
	if err := scanner.Scan(&a.ID, &a.Name, &a.Year, &cover); err != nil {
		return Album{}, fmt.Errorf("scan album: %w", err)
	}
	if cover.Valid {
		a.CoverURL = &cover.String
	}
	return a, nil
}
