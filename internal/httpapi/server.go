package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"melodex/internal/auth"
	"melodex/internal/store"
	"melodex/internal/upload"
)

// AlbumService exposes album workflows, cache included.
type AlbumService interface {
	Create(ctx context.Context, name string, year int) (string, error)
	Get(ctx context.Context, id string) (store.Album, error)
	Songs(ctx context.Context, albumID string) ([]store.SongSummary, error)
	Update(ctx context.Context, id, name string, year int) error
	Delete(ctx context.Context, id string) error
	SetCover(ctx context.Context, id, coverURL string) error
	ToggleLike(ctx context.Context, albumID, userID string) error
	Likes(ctx context.Context, albumID string) (int, bool, error)
}

// SongService exposes song workflows.
type SongService interface {
	Create(ctx context.Context, song store.Song) (string, error)
	List(ctx context.Context, title, performer string) ([]store.SongSummary, error)
	Get(ctx context.Context, id string) (store.Song, error)
	Update(ctx context.Context, id string, song store.Song) error
	Delete(ctx context.Context, id string) error
}

// PlaylistService exposes playlist workflows and access checks.
type PlaylistService interface {
	Create(ctx context.Context, name, owner string) (string, error)
	ListByOwner(ctx context.Context, owner string) ([]store.PlaylistSummary, error)
	Get(ctx context.Context, id string) (store.PlaylistSummary, error)
	Delete(ctx context.Context, id string) error
	AddSong(ctx context.Context, playlistID, songID string) (string, error)
	Songs(ctx context.Context, playlistID string) ([]store.SongSummary, error)
	RemoveSong(ctx context.Context, playlistID, songID string) error
	VerifyOwner(ctx context.Context, playlistID, userID string) error
	VerifyAccess(ctx context.Context, playlistID, userID string) error
}

// UserService exposes account workflows.
type UserService interface {
	Signup(ctx context.Context, username, password, fullname string) (string, error)
	Login(ctx context.Context, username, password string) (access, refresh string, err error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

// CollaborationService exposes collaborator grants.
type CollaborationService interface {
	Add(ctx context.Context, playlistID, userID string) (string, error)
	Remove(ctx context.Context, playlistID, userID string) error
}

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	VerifyAccessToken(token string) (string, error)
}

// CoverStorage persists uploaded album covers.
type CoverStorage interface {
	SaveCover(r io.Reader, contentType string, size int64) (string, error)
	Dir() string
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	albums    AlbumService
	songs     SongService
	playlists PlaylistService
	users     UserService
	collabs   CollaborationService
	tokens    TokenVerifier
	covers    CoverStorage
	baseURL   string
}

// New configures a Server with the given collaborators. baseURL is used to
// build public cover locations.
func New(
	albums AlbumService,
	songs SongService,
	playlists PlaylistService,
	users UserService,
	collabs CollaborationService,
	tokens TokenVerifier,
	covers CoverStorage,
	baseURL string,
) *Server {
	return &Server{
		albums:    albums,
		songs:     songs,
		playlists: playlists,
		users:     users,
		collabs:   collabs,
		tokens:    tokens,
		covers:    covers,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}
}

// Routes exposes the HTTP handlers for the catalog.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/albums", s.handleAlbums)
	mux.HandleFunc("/albums/", s.handleAlbum)
	if s.covers != nil {
		mux.Handle("/albums/covers/", http.StripPrefix("/albums/covers/", http.FileServer(http.Dir(s.covers.Dir()))))
	}

	mux.HandleFunc("/songs", s.handleSongs)
	mux.HandleFunc("/songs/", s.handleSong)

	mux.HandleFunc("/playlists", s.handlePlaylists)
	mux.HandleFunc("/playlists/", s.handlePlaylist)

	mux.HandleFunc("/users", s.handleSignup)
	mux.HandleFunc("/authentications", s.handleAuthentications)
	mux.HandleFunc("/collaborations", s.handleCollaborations)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), errorResponse{Error: err.Error()})
}

// errorStatus maps the service error taxonomy onto HTTP status codes:
// missing entities to 404, rejected writes to 400, access failures to 403.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrAlbumNotFound),
		errors.Is(err, store.ErrSongNotFound),
		errors.Is(err, store.ErrPlaylistNotFound),
		errors.Is(err, store.ErrPlaylistSongNotFound),
		errors.Is(err, store.ErrCollaborationNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, store.ErrInvalidAlbum),
		errors.Is(err, store.ErrInvalidSong),
		errors.Is(err, store.ErrInvalidPlaylist),
		errors.Is(err, store.ErrInvalidLike),
		errors.Is(err, store.ErrLikeExists),
		errors.Is(err, store.ErrInvalidRefreshToken):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, upload.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, upload.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func parseBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

// authenticate resolves the caller's user id from the Authorization header.
func (s *Server) authenticate(r *http.Request) (string, error) {
	token := parseBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		return "", auth.ErrInvalidToken
	}
	return s.tokens.VerifyAccessToken(token)
}
