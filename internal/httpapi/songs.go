package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"melodex/internal/store"
)

type songRequest struct {
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	Performer string  `json:"performer"`
	Genre     string  `json:"genre"`
	Duration  *int    `json:"duration"`
	AlbumID   *string `json:"albumId"`
}

func (req songRequest) toSong() store.Song {
	return store.Song{
		Title:     req.Title,
		Year:      req.Year,
		Performer: req.Performer,
		Genre:     req.Genre,
		Duration:  req.Duration,
		AlbumID:   req.AlbumID,
	}
}

func (s *Server) handleSongs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		songs, err := s.songs.List(r.Context(), r.URL.Query().Get("title"), r.URL.Query().Get("performer"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Songs []store.SongSummary `json:"songs"`
		}{Songs: songs})
	case http.MethodPost:
		var req songRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
			return
		}
		id, err := s.songs.Create(r.Context(), req.toSong())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, struct {
			SongID string `json:"songId"`
		}{SongID: id})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSong(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/songs/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		song, err := s.songs.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Song store.Song `json:"song"`
		}{Song: song})
	case http.MethodPut:
		var req songRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
			return
		}
		if err := s.songs.Update(r.Context(), id, req.toSong()); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		if err := s.songs.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
