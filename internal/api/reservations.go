package api

import (
	"net/http"

	"github.com/mkeza/giftlist/internal/model"
	"github.com/mkeza/giftlist/internal/wishlist"
)

// ReservationsHandler handles reserving and releasing other people's items.
type ReservationsHandler struct {
	Service *wishlist.Service
}

// Reserve handles POST /api/items/{id}/reserve. The caller claims the item;
// if someone beat them to it they get a conflict, never a second reservation.
func (h *ReservationsHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	reservation, err := h.Service.Reserve(r.Context(), id, claims.UserID)
	if err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, reservation)
}

// Cancel handles DELETE /api/items/{id}/reserve.
func (h *ReservationsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.Service.Cancel(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "reservation cancelled"})
}

// ListMine handles GET /api/reservations: the caller's active reservations.
func (h *ReservationsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	reservations, err := h.Service.ReservationsBy(r.Context(), claims.UserID)
	if err != nil {
		serviceError(w, err)
		return
	}

	if reservations == nil {
		reservations = []model.Reservation{}
	}
	jsonResponse(w, http.StatusOK, reservations)
}
