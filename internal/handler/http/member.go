package http

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/member"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/middleware"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MemberHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type memberHandlerImpl struct {
	memberService member.MemberService
}

func NewMemberHandler(memberService member.MemberService) MemberHandler {
	return &memberHandlerImpl{memberService: memberService}
}

// Create implements MemberHandler.
func (h *memberHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req member.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BranchID = middleware.BranchIDFromContext(r.Context())

	result, err := h.memberService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Member registered successfully", result)
}

// Get implements MemberHandler.
func (h *memberHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	branchID := middleware.BranchIDFromContext(r.Context())

	result, err := h.memberService.Get(r.Context(), id, branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements MemberHandler.
func (h *memberHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	branchID := middleware.BranchIDFromContext(r.Context())

	filter := member.MemberFilter{
		Search: r.URL.Query().Get("search"),
		Page:   1,
		Limit:  20,
	}
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	result, err := h.memberService.List(r.Context(), filter, branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Items, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: result.Total,
		TotalPages: int(math.Ceil(float64(result.Total) / float64(filter.Limit))),
	})
}

// Update implements MemberHandler.
func (h *memberHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req member.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.memberService.Update(r.Context(), middleware.BranchIDFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member updated successfully", result)
}

// Deactivate implements MemberHandler.
func (h *memberHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	branchID := middleware.BranchIDFromContext(r.Context())

	if err := h.memberService.Deactivate(r.Context(), id, branchID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member deactivated successfully", nil)
}
