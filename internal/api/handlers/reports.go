package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spendlens/spendlens-backend/internal/api/dto"
	"github.com/spendlens/spendlens-backend/internal/application/service"
)

// ReportsHandler serves the report endpoints.
type ReportsHandler struct {
	svc      *service.InsightsService
	currency string
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(svc *service.InsightsService, currency string) *ReportsHandler {
	return &ReportsHandler{svc: svc, currency: currency}
}

// Spending handles GET /api/reports/spending - spending totals by category.
func (h *ReportsHandler) Spending(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid date: expected YYYY-MM-DD"))
		return
	}

	summaries, err := h.svc.SpendingByCategory(r.Context(), rng, parseReportFilters(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewCategoryReportResponse(summaries, h.currency))
}

// Income handles GET /api/reports/income - income totals by category.
func (h *ReportsHandler) Income(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid date: expected YYYY-MM-DD"))
		return
	}

	summaries, err := h.svc.IncomeByCategory(r.Context(), rng, parseReportFilters(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	WriteJSON(w, http.StatusOK, dto.NewCategoryReportResponse(summaries, h.currency))
}

// Trends handles GET /api/reports/trends - month-by-month totals.
func (h *ReportsHandler) Trends(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid date: expected YYYY-MM-DD"))
		return
	}

	trends, err := h.svc.MonthlySpendingTrends(r.Context(), rng, parseReportFilters(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	WriteJSON(w, http.StatusOK, dto.TrendsResponse{Trends: trends, Currency: h.currency})
}

// Analysis handles GET /api/reports/analysis - income vs expense breakdown.
func (h *ReportsHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid date: expected YYYY-MM-DD"))
		return
	}

	analysis, err := h.svc.IncomeExpenseAnalysis(r.Context(), rng, parseReportFilters(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	WriteJSON(w, http.StatusOK, analysis)
}

// CategoryDeepDive handles GET /api/reports/categories/{name} - single
// category detail with a trend series.
func (h *ReportsHandler) CategoryDeepDive(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("category name is required"))
		return
	}

	rng, err := parseDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid date: expected YYYY-MM-DD"))
		return
	}

	deepDive, err := h.svc.CategoryDeepDive(r.Context(), name, rng, parseReportFilters(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	WriteJSON(w, http.StatusOK, deepDive)
}

// BurnRate handles GET /api/reports/burn-rate - spending velocity and
// the current month projection.
func (h *ReportsHandler) BurnRate(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid date: expected YYYY-MM-DD"))
		return
	}

	burnRate, err := h.svc.BurnRate(r.Context(), rng, parseReportFilters(r))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	WriteJSON(w, http.StatusOK, burnRate)
}
