package api

import (
	"database/sql"
	"net/http"

	"github.com/mkeza/giftlist/internal/model"
	"github.com/mkeza/giftlist/internal/store"
	"github.com/mkeza/giftlist/internal/wishlist"
)

// PublicHandler serves shared wishlist pages. No authentication required.
type PublicHandler struct {
	DB      *sql.DB
	Service *wishlist.Service
}

type publicWishlistResponse struct {
	OwnerName string       `json:"owner_name"`
	Items     []model.Item `json:"items"`
}

// Wishlist handles GET /api/wishlist/{id}: the owner's unreserved items. An
// unknown id gets the same empty response as a known account with nothing to
// show, so the endpoint can't be used to probe which accounts exist.
func (h *PublicHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	items, err := h.Service.PublicView(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}

	// Reservation fields stay private even when the flag is always false here.
	for i := range items {
		items[i].ReservedBy = nil
	}

	resp := publicWishlistResponse{Items: items}

	owner, err := store.GetUser(r.Context(), h.DB, id)
	if err != nil {
		serviceError(w, err)
		return
	}
	if owner != nil {
		resp.OwnerName = owner.DisplayName
	}

	jsonResponse(w, http.StatusOK, resp)
}
