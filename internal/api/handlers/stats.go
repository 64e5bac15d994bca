package handlers

import (
	"net/http"

	"github.com/spendlens/spendlens-backend/internal/api/dto"
	"github.com/spendlens/spendlens-backend/internal/application/service"
	"github.com/spendlens/spendlens-backend/internal/domain/recurring"
)

// StatsHandler serves aggregate statistics.
type StatsHandler struct {
	svc      *service.InsightsService
	currency string
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(svc *service.InsightsService, currency string) *StatsHandler {
	return &StatsHandler{svc: svc, currency: currency}
}

// Get handles GET /api/stats - transaction count and subscription totals.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.TransactionCount(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	_, summary, err := h.svc.Subscriptions(r.Context(), recurring.SubscriptionFilters{})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	WriteJSON(w, http.StatusOK, dto.StatsResponse{
		TransactionCount:  count,
		SubscriptionStats: summary,
		Currency:          h.currency,
	})
}
