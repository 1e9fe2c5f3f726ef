package http

import (
	"net/http"
	"strconv"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/business"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/middleware"
	"github.com/eigenfit/eigenfit-backend-go/internal/handler/http/response"
)

type BusinessHandler interface {
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type businessHandlerImpl struct {
	businessService business.BusinessService
}

func NewBusinessHandler(businessService business.BusinessService) BusinessHandler {
	return &businessHandlerImpl{businessService: businessService}
}

// Dashboard implements BusinessHandler.
func (h *businessHandlerImpl) Dashboard(w http.ResponseWriter, r *http.Request) {
	branchID := middleware.BranchIDFromContext(r.Context())

	filter := business.DashboardFilter{}
	queryInt := func(name string) int {
		v, err := strconv.Atoi(r.URL.Query().Get(name))
		if err != nil {
			return 0
		}
		return v
	}
	filter.InactiveDays = queryInt("inactive_days")
	filter.PopularPlansLimit = queryInt("popular_plans_limit")
	filter.RecentPaymentsLimit = queryInt("recent_payments_limit")
	filter.InactiveLimit = queryInt("inactive_members_limit")

	result, err := h.businessService.Dashboard(r.Context(), branchID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
