package http

import (
	"encoding/json"
	"net/http"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/plan"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/middleware"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BranchHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type branchHandlerImpl struct {
	branchService branch.BranchService
}

func NewBranchHandler(branchService branch.BranchService) BranchHandler {
	return &branchHandlerImpl{branchService: branchService}
}

// Create implements BranchHandler.
func (h *branchHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req branch.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.branchService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Branch created successfully", result)
}

// Get implements BranchHandler.
func (h *branchHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.branchService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements BranchHandler.
func (h *branchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.branchService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements BranchHandler.
func (h *branchHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req branch.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.branchService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Branch updated successfully", result)
}

type PlanHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type planHandlerImpl struct {
	planService plan.PlanService
}

func NewPlanHandler(planService plan.PlanService) PlanHandler {
	return &planHandlerImpl{planService: planService}
}

// Create implements PlanHandler.
func (h *planHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req plan.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BranchID = middleware.BranchIDFromContext(r.Context())

	result, err := h.planService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Plan created successfully", result)
}

// Get implements PlanHandler.
func (h *planHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	branchID := middleware.BranchIDFromContext(r.Context())

	result, err := h.planService.Get(r.Context(), id, branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements PlanHandler.
func (h *planHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	branchID := middleware.BranchIDFromContext(r.Context())

	result, err := h.planService.List(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements PlanHandler.
func (h *planHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req plan.UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.planService.Update(r.Context(), middleware.BranchIDFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Plan updated successfully", result)
}

// Delete implements PlanHandler.
func (h *planHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	branchID := middleware.BranchIDFromContext(r.Context())

	if err := h.planService.Delete(r.Context(), id, branchID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Plan deleted successfully", nil)
}
