package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/attendance"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/middleware"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListCurrent(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BranchID = middleware.BranchIDFromContext(r.Context())

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in recorded", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	branchID := middleware.BranchIDFromContext(r.Context())

	result, err := h.attendanceService.CheckOut(r.Context(), id, branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out recorded", result)
}

// ListCurrent implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListCurrent(w http.ResponseWriter, r *http.Request) {
	branchID := middleware.BranchIDFromContext(r.Context())

	result, err := h.attendanceService.ListCurrent(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	branchID := middleware.BranchIDFromContext(r.Context())

	filter := attendance.ListAttendancesFilter{
		AttendanceDate: r.URL.Query().Get("attendance_date"),
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	result, err := h.attendanceService.ListByDate(r.Context(), branchID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
