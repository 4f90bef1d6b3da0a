package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/service"
)

type createExpenseRequest struct {
	Description  string                     `json:"description"`
	Amount       decimal.Decimal            `json:"amount"`
	PayerID      string                     `json:"payer_id"`
	Policy       models.SplitPolicy         `json:"policy"`
	Participants []string                   `json:"participants"`
	Shares       map[string]decimal.Decimal `json:"shares,omitempty"`
	Percentages  map[string]decimal.Decimal `json:"percentages,omitempty"`
}

// CreateExpense records a new expense, deriving per-member shares from the
// split policy.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	expense, err := h.expenseSvc.CreateExpense(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"), service.ExpenseInput{
		Description:  req.Description,
		Amount:       req.Amount,
		PayerID:      req.PayerID,
		Policy:       req.Policy,
		Participants: req.Participants,
		Shares:       req.Shares,
		Percentages:  req.Percentages,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// UpdateExpense replaces an expense's description, amount, policy, and splits.
func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	expense, err := h.expenseSvc.UpdateExpense(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "expenseID"), service.ExpenseInput{
		Description:  req.Description,
		Amount:       req.Amount,
		Policy:       req.Policy,
		Participants: req.Participants,
		Shares:       req.Shares,
		Percentages:  req.Percentages,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// ListExpenses returns the group's expenses, newest first.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenseSvc.ListExpenses(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// DeleteExpense removes an expense.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	err := h.expenseSvc.DeleteExpense(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "expenseID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
