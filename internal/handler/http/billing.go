package http

import (
	"io"
	"net/http"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/billing"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/middleware"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/response"
)

type BillingHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Checkout(w http.ResponseWriter, r *http.Request)
	Webhook(w http.ResponseWriter, r *http.Request)
}

type billingHandlerImpl struct {
	billingService billing.BillingService
}

func NewBillingHandler(billingService billing.BillingService) BillingHandler {
	return &billingHandlerImpl{billingService: billingService}
}

// Status implements BillingHandler.
func (h *billingHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserIDFromContext(r.Context())

	result, err := h.billingService.Status(r.Context(), ownerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements BillingHandler.
func (h *billingHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserIDFromContext(r.Context())

	result, err := h.billingService.History(r.Context(), ownerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Checkout implements BillingHandler.
func (h *billingHandlerImpl) Checkout(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserIDFromContext(r.Context())

	result, err := h.billingService.Checkout(r.Context(), ownerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invoice created", result)
}

// Webhook implements BillingHandler. The route is public; the callback
// token header authenticates the gateway.
func (h *billingHandlerImpl) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		response.BadRequest(w, "Failed to read webhook payload", nil)
		return
	}

	callbackToken := r.Header.Get("x-callback-token")
	if err := h.billingService.HandleWebhook(r.Context(), callbackToken, payload); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nil)
}
