package usecase

import (
	"context"

	repo "app/internal/repository"
)

type DashboardUsecase struct {
	dashboard repo.DashboardRepository
	products  repo.ProductRepository
}

func NewDashboardUsecase(dashboard repo.DashboardRepository, products repo.ProductRepository) *DashboardUsecase {
	return &DashboardUsecase{dashboard: dashboard, products: products}
}

type DashboardOutput struct {
	Revenue        float64             `json:"revenue"`
	Orders         repo.OrdersCount    `json:"orders"`
	ActiveProducts int64               `json:"active_products"`
	MonthlyRevenue []repo.MonthlyPoint `json:"monthly_revenue"`
	MonthlyOrders  []repo.MonthlyPoint `json:"monthly_orders"`
}

const dashboardMonths = 12

func (u *DashboardUsecase) Summary(ctx context.Context) (DashboardOutput, error) {
	var out DashboardOutput

	revenue, err := u.dashboard.PaidRevenue(ctx)
	if err != nil {
		return out, mapRepoError(err)
	}
	orders, err := u.dashboard.CountOrders(ctx)
	if err != nil {
		return out, mapRepoError(err)
	}
	active, err := u.products.CountByStatus(ctx, "Active")
	if err != nil {
		return out, mapRepoError(err)
	}
	monthlyRevenue, err := u.dashboard.MonthlyRevenue(ctx, dashboardMonths)
	if err != nil {
		return out, mapRepoError(err)
	}
	monthlyOrders, err := u.dashboard.MonthlyOrders(ctx, dashboardMonths)
	if err != nil {
		return out, mapRepoError(err)
	}

	out = DashboardOutput{
		Revenue:        revenue,
		Orders:         orders,
		ActiveProducts: active,
		MonthlyRevenue: monthlyRevenue,
		MonthlyOrders:  monthlyOrders,
	}
	if out.MonthlyRevenue == nil {
		out.MonthlyRevenue = []repo.MonthlyPoint{}
	}
	if out.MonthlyOrders == nil {
		out.MonthlyOrders = []repo.MonthlyPoint{}
	}
	return out, nil
}
