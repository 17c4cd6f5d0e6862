package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// AddCollaboration grants a user collaborator access to a playlist.
func (s *Store) AddCollaboration(ctx context.Context, playlistID, userID string) (string, error) {
	id := newID("collab")

	var inserted string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO collaborations (id, playlist_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, id, playlistID, userID).Scan(&inserted)
	if err != nil {
		return "", fmt.Errorf("insert collaboration: %w", err)
	}

	return inserted, nil
}

// DeleteCollaboration revokes a user's collaborator access.
func (s *Store) DeleteCollaboration(ctx context.Context, playlistID, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID)
	if err != nil {
		return fmt.Errorf("delete collaboration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCollaborationNotFound
	}
	return nil
}

// VerifyCollaborator succeeds only when the user collaborates on the playlist.
func (s *Store) VerifyCollaborator(ctx context.Context, playlistID, userID string) error {
	var id string
	err := s.db.QueryRowContext(ctx, `
		SELECT id
		FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrForbidden
	}
	if err != nil {
		return fmt.Errorf("lookup collaboration: %w", err)
	}
	return nil
}
