package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nautimar/nautica-shop/internal/service"
	"github.com/nautimar/nautica-shop/internal/storage"
)

// ProductsHandler обрабатывает запрос GET /api/products.
// Поддерживаются query-параметры type, featured и q (поиск по названию).
func ProductsHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ProductsHandler"
		logger := log.With(slog.String("op", op))

		filter := storage.ProductFilter{
			Type:   r.URL.Query().Get("type"),
			Search: r.URL.Query().Get("q"),
		}
		if raw := r.URL.Query().Get("featured"); raw != "" {
			featured, err := strconv.ParseBool(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid featured parameter")
				return
			}
			filter.Featured = &featured
		}

		products, err := catalogService.ListProducts(r.Context(), filter)
		if err != nil {
			logger.Error("failed to list products", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, products)
	}
}

// ProductHandler обрабатывает запрос GET /api/products/{id}
func ProductHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ProductHandler"
		logger := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "id parameter is required")
			return
		}

		product, err := catalogService.GetProduct(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				writeError(w, http.StatusNotFound, "product not found")
				return
			}
			logger.Error("failed to get product", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, product)
	}
}

// AccessoriesHandler обрабатывает запрос GET /api/accessories
func AccessoriesHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AccessoriesHandler"
		logger := log.With(slog.String("op", op))

		accessories, err := catalogService.ListAccessories(r.Context())
		if err != nil {
			logger.Error("failed to list accessories", slog.Any("error", err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, accessories)
	}
}
