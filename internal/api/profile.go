package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mkeza/giftlist/internal/imaging"
	"github.com/mkeza/giftlist/internal/model"
	"github.com/mkeza/giftlist/internal/store"
	"github.com/mkeza/giftlist/internal/wishlist"
)

// ProfileHandler handles the caller's own account endpoints.
type ProfileHandler struct {
	DB      *sql.DB
	Service *wishlist.Service
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name"`
	BirthDate   string `json:"birth_date"`
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	user, err := store.GetUser(r.Context(), h.DB, claims.UserID)
	if err != nil {
		serviceError(w, err)
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "account not found")
		return
	}

	jsonResponse(w, http.StatusOK, user)
}

// Update handles PUT /api/profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" {
		jsonError(w, http.StatusBadRequest, "display name required")
		return
	}
	if err := model.ValidateBirthDate(req.BirthDate); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	var birthDate *string
	if req.BirthDate != "" {
		birthDate = &req.BirthDate
	}

	if err := store.UpdateUserProfile(r.Context(), h.DB, claims.UserID, req.DisplayName, birthDate); err != nil {
		serviceError(w, err)
		return
	}

	user, _ := store.GetUser(r.Context(), h.DB, claims.UserID)
	jsonResponse(w, http.StatusOK, user)
}

// Delete handles DELETE /api/profile. The account, its items, and every
// reservation touching them are removed together.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	if err := h.Service.DeleteAccount(r.Context(), claims.UserID); err != nil {
		serviceError(w, err)
		return
	}

	slog.Info("account deleted", "user", claims.UserID)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

// UploadAvatar handles PUT /api/profile/avatar.
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("avatar")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "avatar file required")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetUserAvatar(r.Context(), h.DB, claims.UserID, result.Data, result.MIME); err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "avatar uploaded"})
}

// GetAvatar handles GET /api/users/{id}/avatar. Public, so avatars can be
// shown on shared wishlist pages.
func (h *ProfileHandler) GetAvatar(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	data, mime, err := store.GetUserAvatar(r.Context(), h.DB, id)
	if err != nil {
		serviceError(w, err)
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no avatar")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
