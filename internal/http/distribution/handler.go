package distribution

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sprasadik2010/vantage-system-sub000/internal/commission"
	"github.com/sprasadik2010/vantage-system-sub000/internal/referral"
)

type Handler struct {
	svc *commission.Service
}

func NewHandler(svc *commission.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.distribute)
	r.Get("/incomes", h.listIncomes)
}

type distributeRequest struct {
	BusinessKey string `json:"business_key"`
	Amount      int64  `json:"amount"` // cents
	IncomeType  string `json:"income_type"`
	Notes       string `json:"notes"`
}

type levelShareResponse struct {
	Level           int    `json:"level"`
	BusinessKey     string `json:"business_key"`
	RateBasisPoints int    `json:"rate_basis_points"`
	Amount          int64  `json:"amount"`
	Eligible        bool   `json:"eligible"`
}

type resultResponse struct {
	TransactionID     uuid.UUID            `json:"transaction_id"`
	Distributed       int64                `json:"distributed"`
	AncestorsCredited int                  `json:"ancestors_credited"`
	Levels            []levelShareResponse `json:"levels"`
	CompletedAt       time.Time            `json:"completed_at"`
}

func (h *Handler) distribute(w http.ResponseWriter, r *http.Request) {
	var req distributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.DistributeOne(r.Context(), req.BusinessKey, req.Amount, commission.IncomeType(req.IncomeType), req.Notes)
	if err != nil {
		writeDistributeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResultResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeDistributeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, commission.ErrInvalidAmount), errors.Is(err, commission.ErrInvalidIncomeType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, referral.ErrNotFound):
		http.Error(w, "unknown business key", http.StatusNotFound)
	case errors.Is(err, commission.ErrConflict):
		http.Error(w, "storage contention, retry later", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func (h *Handler) listIncomes(w http.ResponseWriter, r *http.Request) {
	filter := commission.IncomeFilter{}

	if s := r.URL.Query().Get("recipient_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid recipient_id", http.StatusBadRequest)
			return
		}

		filter.RecipientID = &id
	}

	if s := r.URL.Query().Get("income_type"); s != "" {
		t := commission.IncomeType(s)
		filter.IncomeType = &t
	}

	if s := r.URL.Query().Get("source_business_key"); s != "" {
		filter.SourceBusinessKey = &s
	}

	incomes, err := h.svc.Incomes(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toIncomeList(incomes)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type incomeResponse struct {
	ID                uuid.UUID `json:"id"`
	RecipientID       uuid.UUID `json:"recipient_id"`
	Amount            int64     `json:"amount"`
	RateBasisPoints   int       `json:"rate_basis_points"`
	Level             int       `json:"level"`
	IncomeType        string    `json:"income_type"`
	Origin            string    `json:"origin"`
	SourceID          uuid.UUID `json:"source_id"`
	SourceBusinessKey string    `json:"source_business_key"`
	SourceAmount      int64     `json:"source_amount"`
	Description       string    `json:"description,omitempty"`
	TransactionID     uuid.UUID `json:"transaction_id"`
	CreatedAt         time.Time `json:"created_at"`
}

func toResultResponse(result *commission.Result) resultResponse {
	levels := make([]levelShareResponse, 0, len(result.Levels))
	for _, share := range result.Levels {
		levels = append(levels, levelShareResponse{
			Level:           share.Level,
			BusinessKey:     share.BusinessKey,
			RateBasisPoints: share.RateBasisPoints,
			Amount:          share.Amount,
			Eligible:        share.Eligible,
		})
	}

	return resultResponse{
		TransactionID:     result.TransactionID,
		Distributed:       result.Distributed,
		AncestorsCredited: result.AncestorsCredited,
		Levels:            levels,
		CompletedAt:       result.CompletedAt,
	}
}

func toIncomeList(incomes []*commission.Income) []incomeResponse {
	responses := make([]incomeResponse, 0, len(incomes))
	for _, in := range incomes {
		responses = append(responses, incomeResponse{
			ID:                in.ID,
			RecipientID:       in.RecipientID,
			Amount:            in.Amount,
			RateBasisPoints:   in.RateBasisPoints,
			Level:             in.Level,
			IncomeType:        string(in.IncomeType),
			Origin:            string(in.Origin),
			SourceID:          in.SourceID,
			SourceBusinessKey: in.SourceBusinessKey,
			SourceAmount:      in.SourceAmount,
			Description:       in.Description,
			TransactionID:     in.TransactionID,
			CreatedAt:         in.CreatedAt,
		})
	}

	return responses
}
