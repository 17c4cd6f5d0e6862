package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"melodex/internal/store"
)

type albumRequest struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

type albumResponse struct {
	store.Album
	Songs []store.SongSummary `json:"songs"`
}

func (s *Server) handleAlbums(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req albumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	id, err := s.albums.Create(r.Context(), req.Name, req.Year)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		AlbumID string `json:"albumId"`
	}{AlbumID: id})
}

// handleAlbum dispatches /albums/{id}, /albums/{id}/covers and
// /albums/{id}/likes.
func (s *Server) handleAlbum(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/albums/")
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 2 {
		switch parts[1] {
		case "covers":
			s.handleAlbumCover(w, r, id)
		case "likes":
			s.handleAlbumLikes(w, r, id)
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		album, err := s.albums.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		songs, err := s.albums.Songs(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Album albumResponse `json:"album"`
		}{Album: albumResponse{Album: album, Songs: songs}})
	case http.MethodPut:
		var req albumRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
			return
		}
		if err := s.albums.Update(r.Context(), id, req.Name, req.Year); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		if err := s.albums.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAlbumCover(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	file, header, err := r.FormFile("cover")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cover file is required"})
		return
	}
	defer file.Close()

	filename, err := s.covers.SaveCover(file, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		writeError(w, err)
		return
	}

	location := s.baseURL + "/albums/covers/" + filename
	if err := s.albums.SetCover(r.Context(), id, location); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, struct {
		CoverURL string `json:"coverUrl"`
	}{CoverURL: location})
}

func (s *Server) handleAlbumLikes(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodPost:
		userID, err := s.authenticate(r)
		if err != nil {
			writeError(w, err)
			return
		}
		// The album must exist before its like state can be toggled.
		if _, err := s.albums.Get(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		if err := s.albums.ToggleLike(r.Context(), id, userID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
	case http.MethodGet:
		count, fromCache, err := s.albums.Likes(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		if fromCache {
			w.Header().Set("X-Data-Source", "cache")
		}
		writeJSON(w, http.StatusOK, struct {
			Likes int `json:"likes"`
		}{Likes: count})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
