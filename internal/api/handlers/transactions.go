package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/spendlens/spendlens-backend/internal/api/dto"
	"github.com/spendlens/spendlens-backend/internal/application/service"
	"github.com/spendlens/spendlens-backend/internal/infrastructure/storage"
)

// TransactionsHandler serves the stored transaction endpoints.
type TransactionsHandler struct {
	svc  *service.InsightsService
	repo storage.Repository
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(svc *service.InsightsService, repo storage.Repository) *TransactionsHandler {
	return &TransactionsHandler{svc: svc, repo: repo}
}

// List handles GET /api/transactions - paginated list of stored
// transactions.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := ParseIntParam(r, "limit", 100)
	offset := ParseIntParam(r, "offset", 0)

	filters := storage.TransactionFilters{
		Account:  r.URL.Query().Get("account"),
		Category: r.URL.Query().Get("category"),
		Type:     r.URL.Query().Get("type"),
		Limit:    limit,
		Offset:   offset,
	}

	start, err := ParseDateParam(r, "start")
	if err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid date: expected YYYY-MM-DD"))
		return
	}
	end, err := ParseDateParam(r, "end")
	if err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid date: expected YYYY-MM-DD"))
		return
	}
	filters.Start = start
	filters.End = end

	txs, err := h.repo.ListTransactions(filters)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	WriteJSON(w, http.StatusOK, dto.TransactionListResponse{
		Transactions: txs,
		Count:        len(txs),
		Limit:        limit,
		Offset:       offset,
	})
}

// Ingest handles POST /api/transactions - stores a transaction batch.
func (h *TransactionsHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req dto.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid JSON body"))
		return
	}

	txs, err := req.Validate()
	if err != nil {
		WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
		return
	}

	saved, err := h.svc.IngestTransactions(r.Context(), txs)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}
	WriteJSON(w, http.StatusCreated, dto.IngestResponse{Saved: saved})
}
