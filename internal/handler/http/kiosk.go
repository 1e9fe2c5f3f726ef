package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/kiosk"
	"github.com/eigenfit/eigenfit-backend-go/internal/domain/visitstats"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/middleware"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/response"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/jwt"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/sse"
)

type KioskHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
	VerifyPIN(w http.ResponseWriter, r *http.Request)
	UpdatePIN(w http.ResponseWriter, r *http.Request)
	TodayStats(w http.ResponseWriter, r *http.Request)
	Leaderboard(w http.ResponseWriter, r *http.Request)
	StreamToken(w http.ResponseWriter, r *http.Request)
	Events(w http.ResponseWriter, r *http.Request)
}

type kioskHandlerImpl struct {
	kioskService kiosk.KioskService
	statsService visitstats.VisitStatsService
	jwtService   jwt.Service
	hub          *sse.Hub
}

func NewKioskHandler(
	kioskService kiosk.KioskService,
	statsService visitstats.VisitStatsService,
	jwtService jwt.Service,
	hub *sse.Hub,
) KioskHandler {
	return &kioskHandlerImpl{
		kioskService: kioskService,
		statsService: statsService,
		jwtService:   jwtService,
		hub:          hub,
	}
}

// Check implements KioskHandler.
func (h *kioskHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	var req kiosk.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BranchID = middleware.BranchIDFromContext(r.Context())

	result, err := h.kioskService.Check(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// VerifyPIN implements KioskHandler.
func (h *kioskHandlerImpl) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	var req kiosk.VerifyPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BranchID = middleware.BranchIDFromContext(r.Context())

	if err := h.kioskService.VerifyPIN(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "PIN verified", nil)
}

// UpdatePIN implements KioskHandler.
func (h *kioskHandlerImpl) UpdatePIN(w http.ResponseWriter, r *http.Request) {
	var req kiosk.UpdatePINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BranchID = middleware.BranchIDFromContext(r.Context())

	if err := h.kioskService.UpdatePIN(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "PIN updated successfully", nil)
}

// TodayStats implements KioskHandler.
func (h *kioskHandlerImpl) TodayStats(w http.ResponseWriter, r *http.Request) {
	branchID := middleware.BranchIDFromContext(r.Context())

	snapshot, err := h.statsService.Today(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, snapshot)
}

// Leaderboard implements KioskHandler.
func (h *kioskHandlerImpl) Leaderboard(w http.ResponseWriter, r *http.Request) {
	branchID := middleware.BranchIDFromContext(r.Context())

	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}

	result, err := h.statsService.StreakLeaderboard(r.Context(), branchID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// StreamToken implements KioskHandler. The returned token authorizes one
// short-lived event-stream connection for the kiosk terminal.
func (h *kioskHandlerImpl) StreamToken(w http.ResponseWriter, r *http.Request) {
	branchID := middleware.BranchIDFromContext(r.Context())

	token, expiresIn, err := h.jwtService.GenerateKioskToken(branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

// Events implements KioskHandler. The endpoint is public; the kiosk token
// in the query string scopes the stream to one branch. EventSource cannot
// set an Authorization header, hence the query parameter.
func (h *kioskHandlerImpl) Events(w http.ResponseWriter, r *http.Request) {
	branchID, err := h.jwtService.ValidateKioskToken(r.URL.Query().Get("token"))
	if err != nil {
		response.Unauthorized(w, "Invalid kiosk stream token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cleanup := h.hub.Subscribe(branchID)
	defer cleanup()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, payload)
			flusher.Flush()
		}
	}
}
