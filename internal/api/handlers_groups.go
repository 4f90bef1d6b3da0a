package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitledger/splitledger/internal/middleware"
)

type createGroupRequest struct {
	Name string `json:"name"`
}

type addMemberRequest struct {
	Email string `json:"email"`
}

// CreateGroup creates a group with the caller as its first member.
func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := h.groupSvc.CreateGroup(r.Context(), middleware.GetUserID(r.Context()), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

// ListGroups returns every group the caller belongs to.
func (h *Handlers) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupSvc.ListGroups(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// GetGroup returns a single group with its members.
func (h *Handlers) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groupSvc.GetGroup(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// AddMember adds a registered user to the group by email.
func (h *Handlers) AddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := h.groupSvc.AddMemberByEmail(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"), req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// RemoveMember removes a member from the group.
func (h *Handlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	err := h.groupSvc.RemoveMember(ctx, middleware.GetUserID(ctx), chi.URLParam(r, "groupID"), chi.URLParam(r, "memberID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CloseGroup marks the group closed.
func (h *Handlers) CloseGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groupSvc.CloseGroup(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}
