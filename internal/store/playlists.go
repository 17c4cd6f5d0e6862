package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Playlist models a playlist row as persisted.
type Playlist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner"`
}

// PlaylistSummary is the listing shape, with the owner's username joined in.
type PlaylistSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// CreatePlaylist inserts a new playlist for the given owner.
func (s *Store) CreatePlaylist(ctx context.Context, name, owner string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidPlaylist)
	}

	id := newID("playlist")

	var inserted string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlists (id, name, owner)
		VALUES ($1, $2, $3)
		RETURNING id
	`, id, strings.TrimSpace(name), owner).Scan(&inserted)
	if err != nil {
		return "", fmt.Errorf("insert playlist: %w", err)
	}
	if inserted == "" {
		return "", fmt.Errorf("%w: playlist was not created", ErrInvalidPlaylist)
	}

	return inserted, nil
}

// PlaylistsByOwner lists the playlists owned by a user.
func (s *Store) PlaylistsByOwner(ctx context.Context, owner string) ([]PlaylistSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT playlists.id, playlists.name, users.username
		FROM playlists
		LEFT JOIN users ON users.id = playlists.owner
		WHERE playlists.owner = $1
		ORDER BY playlists.id ASC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("select playlists: %w", err)
	}
	defer rows.Close()

	var playlists []PlaylistSummary
	for rows.Next() {
		var p PlaylistSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Username); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

// PlaylistByID returns a playlist with its owner's username.
func (s *Store) PlaylistByID(ctx context.Context, id string) (PlaylistSummary, error) {
	var p PlaylistSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT playlists.id, playlists.name, users.username
		FROM playlists
		LEFT JOIN users ON users.id = playlists.owner
		WHERE playlists.id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return PlaylistSummary{}, ErrPlaylistNotFound
	}
	if err != nil {
		return PlaylistSummary{}, fmt.Errorf("get playlist: %w", err)
	}
	return p, nil
}

// GetPlaylist returns the raw playlist row, owner included. Used by the
// ownership checks, which must bypass the cache.
func (s *Store) GetPlaylist(ctx context.Context, id string) (Playlist, error) {
	var p Playlist
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, owner
		FROM playlists
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Owner)
	if errors.Is(err, sql.ErrNoRows) {
		return Playlist{}, ErrPlaylistNotFound
	}
	if err != nil {
		return Playlist{}, fmt.Errorf("get playlist: %w", err)
	}
	return p, nil
}

// DeletePlaylist removes a playlist and returns its owner so callers can
// evict the owner-scoped cache entry.
func (s *Store) DeletePlaylist(ctx context.Context, id string) (string, error) {
	var owner string
	err := s.db.QueryRowContext(ctx, `
		DELETE FROM playlists
		WHERE id = $1
		RETURNING owner
	`, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrPlaylistNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete playlist: %w", err)
	}
	return owner, nil
}

// AddPlaylistSong attaches a song to a playlist via the join table.
func (s *Store) AddPlaylistSong(ctx context.Context, playlistID, songID string) (string, error) {
	id := newID("playlist-song")

	var inserted string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO playlist_songs (id, playlist_id, song_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, id, playlistID, songID).Scan(&inserted)
	if err != nil {
		return "", fmt.Errorf("insert playlist song: %w", err)
	}
	if inserted == "" {
		return "", fmt.Errorf("%w: song was not added to playlist", ErrInvalidPlaylist)
	}

	return inserted, nil
}

// PlaylistSongs returns the songs attached to a playlist. An unknown
// playlist (or one with no attached songs) yields ErrPlaylistNotFound,
// matching the read-through contract for absent lookups.
func (s *Store) PlaylistSongs(ctx context.Context, playlistID string) ([]SongSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT songs.id, songs.title, songs.performer
		FROM playlist_songs
		INNER JOIN songs ON songs.id = playlist_songs.song_id
		WHERE playlist_songs.playlist_id = $1
		ORDER BY playlist_songs.id ASC
	`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("select playlist songs: %w", err)
	}
	defer rows.Close()

	songs, err := scanSongSummaries(rows)
	if err != nil {
		return nil, err
	}
	if len(songs) == 0 {
		return nil, ErrPlaylistNotFound
	}
	return songs, nil
}

// RemovePlaylistSong detaches a song from a playlist.
func (s *Store) RemovePlaylistSong(ctx context.Context, playlistID, songID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("delete playlist song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistSongNotFound
	}
	return nil
}
