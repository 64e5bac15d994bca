package handlers

import (
	"net/http"

	"github.com/spendlens/spendlens-backend/internal/api/dto"
	"github.com/spendlens/spendlens-backend/internal/application/service"
	"github.com/spendlens/spendlens-backend/internal/domain/recurring"
)

// SubscriptionsHandler serves the recurring-payment endpoints.
type SubscriptionsHandler struct {
	svc      *service.InsightsService
	currency string
}

// NewSubscriptionsHandler creates a new subscriptions handler.
func NewSubscriptionsHandler(svc *service.InsightsService, currency string) *SubscriptionsHandler {
	return &SubscriptionsHandler{svc: svc, currency: currency}
}

// List handles GET /api/subscriptions - detected recurring payments
// with a summary over the filtered set.
func (h *SubscriptionsHandler) List(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid date: expected YYYY-MM-DD"))
		return
	}

	filters := recurring.SubscriptionFilters{
		DateRange:   rng,
		Categories:  ParseListParam(r, "categories"),
		Accounts:    ParseListParam(r, "accounts"),
		Frequencies: ParseListParam(r, "frequency"),
	}

	subs, summary, err := h.svc.Subscriptions(r.Context(), filters)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	WriteJSON(w, http.StatusOK, dto.SubscriptionsResponse{
		Subscriptions: subs,
		Summary:       summary,
		Currency:      h.currency,
	})
}
