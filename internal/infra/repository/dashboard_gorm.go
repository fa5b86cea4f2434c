package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type DashboardGormRepository struct {
	db *gorm.DB
}

func NewDashboardGormRepository(db *gorm.DB) *DashboardGormRepository {
	return &DashboardGormRepository{db: db}
}

func (r *DashboardGormRepository) PaidRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("payment_status = ?", model.PaymentStatusPaid).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return 0, err
	}
	return revenue, nil
}

func (r *DashboardGormRepository) CountOrders(ctx context.Context) (repo.OrdersCount, error) {
	var c repo.OrdersCount
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select(
			"COUNT(*) AS total",
			"COUNT(*) FILTER (WHERE status = 'PENDING') AS pending",
			"COUNT(*) FILTER (WHERE status IN ('SHIPPED','DELIVERED')) AS delivered",
		).
		Scan(&c).Error
	if err != nil {
		return repo.OrdersCount{}, err
	}
	return c, nil
}

func (r *DashboardGormRepository) MonthlyRevenue(ctx context.Context, months int) ([]repo.MonthlyPoint, error) {
	var points []repo.MonthlyPoint
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("to_char(invoice_date, 'Mon YYYY') AS month, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("payment_status = ? AND invoice_date >= (CURRENT_DATE - (? || ' months')::interval)", model.PaymentStatusPaid, months).
		Group("to_char(invoice_date, 'Mon YYYY'), date_trunc('month', invoice_date)").
		Order("date_trunc('month', invoice_date)").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

func (r *DashboardGormRepository) MonthlyOrders(ctx context.Context, months int) ([]repo.MonthlyPoint, error) {
	var points []repo.MonthlyPoint
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("to_char(invoice_date, 'Mon YYYY') AS month, COUNT(*) AS orders").
		Where("invoice_date >= (CURRENT_DATE - (? || ' months')::interval)", months).
		Group("to_char(invoice_date, 'Mon YYYY'), date_trunc('month', invoice_date)").
		Order("date_trunc('month', invoice_date)").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}
