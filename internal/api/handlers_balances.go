package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/middleware"
)

type recordSettlementRequest struct {
	FromID string          `json:"from_id"`
	ToID   string          `json:"to_id"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// GetBalances returns the current balance of every group member, net
// descending.
func (h *Handlers) GetBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.balanceSvc.GroupBalances(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

// GetSettlementPlan returns the recommended transfers that would settle the
// group.
func (h *Handlers) GetSettlementPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.balanceSvc.SettlementPlan(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// RecordSettlement persists a confirmed payment between two members.
func (h *Handlers) RecordSettlement(w http.ResponseWriter, r *http.Request) {
	var req recordSettlementRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx := r.Context()
	settlement, err := h.balanceSvc.RecordSettlement(ctx, middleware.GetUserID(ctx), chi.URLParam(r, "groupID"), req.FromID, req.ToID, req.Amount, req.Note)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, settlement)
}

// DeleteSettlement undoes a recorded settlement.
func (h *Handlers) DeleteSettlement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := h.balanceSvc.DeleteSettlement(ctx, middleware.GetUserID(ctx), chi.URLParam(r, "groupID"), chi.URLParam(r, "settlementID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSettlements returns the group's recorded settlements, newest first.
func (h *Handlers) ListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.balanceSvc.ListSettlements(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settlements)
}
