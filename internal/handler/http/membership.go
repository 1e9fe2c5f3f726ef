package http

import (
	"encoding/json"
	"net/http"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/membership"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/middleware"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MembershipHandler interface {
	Suggest(w http.ResponseWriter, r *http.Request)
	Renew(w http.ResponseWriter, r *http.Request)
	ListByMember(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type membershipHandlerImpl struct {
	membershipService membership.MembershipService
}

func NewMembershipHandler(membershipService membership.MembershipService) MembershipHandler {
	return &membershipHandlerImpl{membershipService: membershipService}
}

// Suggest implements MembershipHandler.
func (h *membershipHandlerImpl) Suggest(w http.ResponseWriter, r *http.Request) {
	var req membership.SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BranchID = middleware.BranchIDFromContext(r.Context())
	req.MemberID = chi.URLParam(r, "memberID")

	result, err := h.membershipService.Suggest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Renew implements MembershipHandler.
func (h *membershipHandlerImpl) Renew(w http.ResponseWriter, r *http.Request) {
	var req membership.RenewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BranchID = middleware.BranchIDFromContext(r.Context())
	req.MemberID = chi.URLParam(r, "memberID")

	result, err := h.membershipService.Renew(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Membership renewed successfully", result)
}

// ListByMember implements MembershipHandler.
func (h *membershipHandlerImpl) ListByMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	branchID := middleware.BranchIDFromContext(r.Context())

	result, err := h.membershipService.ListByMember(r.Context(), memberID, branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Cancel implements MembershipHandler.
func (h *membershipHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	req := membership.CancelRequest{
		ID:       chi.URLParam(r, "id"),
		BranchID: middleware.BranchIDFromContext(r.Context()),
	}

	if err := h.membershipService.Cancel(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Membership canceled", nil)
}
