package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nautimar/nautica-shop/internal/auth/jwtmiddleware"
	"github.com/nautimar/nautica-shop/internal/service"
	"github.com/nautimar/nautica-shop/internal/storage"
)

// ToggleFavoriteResponse — результат переключения избранного
type ToggleFavoriteResponse struct {
	Favorited bool `json:"favorited"`
}

// FavoritesHandler обрабатывает запрос GET /api/favorites
func FavoritesHandler(log *slog.Logger, favoriteService service.FavoriteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.FavoritesHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		favorites, err := favoriteService.List(r.Context(), userID)
		if err != nil {
			logger.Error("failed to list favorites", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, favorites)
	}
}

// ToggleFavoriteHandler обрабатывает запрос POST /api/favorites/{productID}
func ToggleFavoriteHandler(log *slog.Logger, favoriteService service.FavoriteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ToggleFavoriteHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		productID := chi.URLParam(r, "productID")
		if productID == "" {
			writeError(w, http.StatusBadRequest, "productID parameter is required")
			return
		}

		favorited, err := favoriteService.Toggle(r.Context(), userID, productID)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				writeError(w, http.StatusNotFound, "product not found")
				return
			}
			logger.Error("failed to toggle favorite", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, ToggleFavoriteResponse{Favorited: favorited})
	}
}
