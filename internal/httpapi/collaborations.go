package httpapi

import (
	"encoding/json"
	"net/http"
)

type collaborationRequest struct {
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

func (s *Server) handleCollaborations(w http.ResponseWriter, r *http.Request) {
	callerID, err := s.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req collaborationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PlaylistID == "" || req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "playlistId and userId are required"})
		return
	}

	// Only the owner can grant or revoke collaborator access.
	if err := s.playlists.VerifyOwner(r.Context(), req.PlaylistID, callerID); err != nil {
		writeError(w, err)
		return
	}

	switch r.Method {
	case http.MethodPost:
		id, err := s.collabs.Add(r.Context(), req.PlaylistID, req.UserID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, struct {
			CollaborationID string `json:"collaborationId"`
		}{CollaborationID: id})
	case http.MethodDelete:
		if err := s.collabs.Remove(r.Context(), req.PlaylistID, req.UserID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
