package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mkeza/giftlist/internal/wisherrors"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// serviceError maps service errors to HTTP responses. Anything outside the
// known taxonomy is treated as the backing store being unavailable.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wisherrors.ErrInvalidInput):
		jsonError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, wisherrors.ErrItemNotFound),
		errors.Is(err, wisherrors.ErrUserNotFound),
		errors.Is(err, wisherrors.ErrNotReserved):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, wisherrors.ErrNotOwner),
		errors.Is(err, wisherrors.ErrOwnItem):
		jsonError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, wisherrors.ErrAlreadyReserved):
		// Surfaced as unavailability, not retried: a retry cannot win.
		jsonError(w, http.StatusConflict, "item no longer available")
	case errors.Is(err, wisherrors.ErrEmailTaken):
		jsonError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("storage error", "error", err)
		jsonError(w, http.StatusServiceUnavailable, "service unavailable")
	}
}
