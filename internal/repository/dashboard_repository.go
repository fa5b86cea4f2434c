package repository

import "context"

type OrdersCount struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Delivered int64 `json:"delivered"`
}

type MonthlyPoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue,omitempty"`
	Orders  int64   `json:"orders,omitempty"`
}

// ダッシュボード用の集計クエリ
type DashboardRepository interface {
	PaidRevenue(ctx context.Context) (float64, error)
	CountOrders(ctx context.Context) (OrdersCount, error)
	MonthlyRevenue(ctx context.Context, months int) ([]MonthlyPoint, error)
	MonthlyOrders(ctx context.Context, months int) ([]MonthlyPoint, error)
}
