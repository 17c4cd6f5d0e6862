package store

import (
	"context"
	"fmt"
)

// HasAlbumLike reports whether the (album, user) pair is currently liked.
func (s *Store) HasAlbumLike(ctx context.Context, albumID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM album_likes WHERE album_id = $1 AND user_id = $2)
	`, albumID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check album like: %w", err)
	}
	return exists, nil
}

// InsertAlbumLike records a like. The UNIQUE(album_id, user_id) constraint
// keeps the pair from being liked twice.
func (s *Store) InsertAlbumLike(ctx context.Context, albumID, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO album_likes (id, album_id, user_id)
		VALUES ($1, $2, $3)
	`, newID("likes"), albumID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrLikeExists
		}
		return fmt.Errorf("insert album like: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: like was not recorded", ErrInvalidLike)
	}
	return nil
}

// DeleteAlbumLike removes a like.
func (s *Store) DeleteAlbumLike(ctx context.Context, albumID, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM album_likes
		WHERE album_id = $1 AND user_id = $2
	`, albumID, userID)
	if err != nil {
		return fmt.Errorf("delete album like: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: like was not removed", ErrInvalidLike)
	}
	return nil
}

// CountAlbumLikes returns how many users like an album.
func (s *Store) CountAlbumLikes(ctx context.Context, albumID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM album_likes WHERE album_id = $1
	`, albumID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count album likes: %w", err)
	}
	return count, nil
}
