package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"melodex/internal/store"
)

type playlistRequest struct {
	Name string `json:"name"`
}

type playlistSongRequest struct {
	SongID string `json:"songId"`
}

func (s *Server) handlePlaylists(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		playlists, err := s.playlists.ListByOwner(r.Context(), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Playlists []store.PlaylistSummary `json:"playlists"`
		}{Playlists: playlists})
	case http.MethodPost:
		var req playlistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
			return
		}
		id, err := s.playlists.Create(r.Context(), req.Name, userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, struct {
			PlaylistID string `json:"playlistId"`
		}{PlaylistID: id})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handlePlaylist dispatches /playlists/{id} and /playlists/{id}/songs.
func (s *Server) handlePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, err := s.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/playlists/")
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 2 {
		if parts[1] != "songs" {
			http.NotFound(w, r)
			return
		}
		s.handlePlaylistSongs(w, r, id, userID)
		return
	}

	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Deletion is owner-only; collaborators cannot remove a playlist.
	if err := s.playlists.VerifyOwner(r.Context(), id, userID); err != nil {
		writeError(w, err)
		return
	}
	if err := s.playlists.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlaylistSongs(w http.ResponseWriter, r *http.Request, playlistID, userID string) {
	if err := s.playlists.VerifyAccess(r.Context(), playlistID, userID); err != nil {
		writeError(w, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		playlist, err := s.playlists.Get(r.Context(), playlistID)
		if err != nil {
			writeError(w, err)
			return
		}
		songs, err := s.playlists.Songs(r.Context(), playlistID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Playlist store.PlaylistSummary `json:"playlist"`
			Songs    []store.SongSummary   `json:"songs"`
		}{Playlist: playlist, Songs: songs})
	case http.MethodPost:
		var req playlistSongRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SongID == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "songId is required"})
			return
		}
		if _, err := s.playlists.AddSong(r.Context(), playlistID, req.SongID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	case http.MethodDelete:
		var req playlistSongRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SongID == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "songId is required"})
			return
		}
		if err := s.playlists.RemoveSong(r.Context(), playlistID, req.SongID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
