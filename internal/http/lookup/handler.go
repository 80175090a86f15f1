package lookup

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sprasadik2010/vantage-system-sub000/internal/referral"
)

// Handler lets operators find the business key for a manual distribution.
// The name search is a convenience for humans; distributions themselves only
// ever accept an exact business key.
type Handler struct {
	svc *referral.Service
}

func NewHandler(svc *referral.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.search)
	r.Get("/{businessKey}", h.get)
}

type userResponse struct {
	ID              uuid.UUID `json:"id"`
	BusinessKey     string    `json:"business_key"`
	Name            string    `json:"name"`
	DirectReferrals int       `json:"direct_referrals"`
	WalletBalance   int64     `json:"wallet_balance"`
	TotalEarned     int64     `json:"total_earned"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Lookup(r.Context(), chi.URLParam(r, "businessKey"))
	if err != nil {
		if errors.Is(err, referral.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toUserResponse(user)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "name query parameter is required", http.StatusBadRequest)
		return
	}

	users, err := h.svc.Search(r.Context(), name, 20)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	responses := make([]userResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(responses); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toUserResponse(u *referral.User) userResponse {
	return userResponse{
		ID:              u.ID,
		BusinessKey:     u.BusinessKey,
		Name:            u.Name,
		DirectReferrals: u.DirectReferrals,
		WalletBalance:   u.WalletBalance,
		TotalEarned:     u.TotalEarned,
		Active:          u.Active,
		CreatedAt:       u.CreatedAt,
	}
}
