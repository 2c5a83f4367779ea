package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/leora/backend/internal/estimate"
	"github.com/leora/backend/internal/repository"
	"github.com/leora/backend/internal/service"
)

// Handler はヘルスチェックと CORS を扱う
type Handler struct {
	db          repository.DB
	master      service.MasterDataService
	formulas    estimate.Config
	frontendURL string
}

func New(db repository.DB, master service.MasterDataService, formulas estimate.Config, frontendURL string) *Handler {
	return &Handler{db: db, master: master, formulas: formulas, frontendURL: frontendURL}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeServiceError maps service and repository errors to HTTP responses.
// Anything unrecognised is a persistence failure: logged, reported as
// retryable, and never retried by the server itself.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	if ve, ok := service.IsValidation(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "validation_failed", "fields": ve.Fields})
		return
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, service.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden", "message": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	case errors.Is(err, service.ErrConfirmationRequired):
		writeError(w, http.StatusPreconditionRequired, "confirmation_required")
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_status")
	default:
		slog.Error(op+" failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "persistence_failed", "retryable": true})
	}
}

// decodeJSON decodes the request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	return true
}
