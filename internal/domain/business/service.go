package business

import "context"

type BusinessService interface {
	Dashboard(ctx context.Context, branchID string, filter DashboardFilter) (DashboardResponse, error)
}
