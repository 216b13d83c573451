package api

import (
	"net/http"

	"github.com/mkeza/giftlist/internal/model"
	"github.com/mkeza/giftlist/internal/wishlist"
)

// ItemsHandler handles the caller's own wishlist items.
type ItemsHandler struct {
	Service *wishlist.Service
}

// List handles GET /api/items. Supports ?q= for search and
// ?category=&priority= for filtering; q takes precedence.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var items []model.Item
	var err error

	query := r.URL.Query()
	if q := query.Get("q"); q != "" {
		items, err = h.Service.Search(r.Context(), claims.UserID, q)
	} else if query.Get("category") != "" || query.Get("priority") != "" {
		items, err = h.Service.Filter(r.Context(), claims.UserID, query.Get("category"), query.Get("priority"))
	} else {
		items, err = h.Service.ItemsOwnedBy(r.Context(), claims.UserID)
	}
	if err != nil {
		serviceError(w, err)
		return
	}

	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var in wishlist.ItemInput
	if err := decodeJSON(r, &in); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.CreateItem(r.Context(), claims.UserID, in)
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}. Owner only; visitors see items through the
// public wishlist endpoint instead.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	item, err := h.Service.OwnItem(r.Context(), id, claims.UserID)
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	var upd wishlist.ItemUpdate
	if err := decodeJSON(r, &upd); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.UpdateItem(r.Context(), id, claims.UserID, upd)
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	if err := h.Service.DeleteItem(r.Context(), id, claims.UserID); err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}
