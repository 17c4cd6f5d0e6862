package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"melodex/internal/app/albums"
	"melodex/internal/app/collabs"
	"melodex/internal/app/playlists"
	"melodex/internal/app/songs"
	"melodex/internal/app/users"
	"melodex/internal/auth"
	"melodex/internal/cache"
	"melodex/internal/httpapi"
	"melodex/internal/middleware"
	"melodex/internal/store"
	"melodex/internal/upload"
)

func newHTTPHandler(cfg Config, dataStore *store.Store, logger zerolog.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenAge)
	if err != nil {
		return nil, fmt.Errorf("configure token manager: %w", err)
	}

	covers, err := upload.NewStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("configure cover storage: %w", err)
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.TTL = cfg.CacheTTL
	keyValue := cache.NewMemory(cacheCfg)

	collabSvc := collabs.New(dataStore, dataStore)
	albumSvc := albums.New(dataStore, keyValue)
	songSvc := songs.New(dataStore, keyValue)
	playlistSvc := playlists.New(dataStore, keyValue, collabSvc)
	userSvc := users.New(dataStore, tokens)

	api := httpapi.New(albumSvc, songSvc, playlistSvc, userSvc, collabSvc, tokens, covers, cfg.BaseURL)

	handler := middleware.Recovery(logger)(api.Routes())
	handler = middleware.RequestLogging(logger)(handler)
	return withCORS(cfg.AllowedOrigins, handler), nil
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 || origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
