package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

// 一覧は注文側の請求書情報を載せて返す
type ShipmentWithOrder struct {
	model.Shipment
	InvoiceNo        *string    `json:"invoice_no"`
	OrderOrderDate   *time.Time `json:"order_date"`
	OrderTotalAmount *float64   `json:"order_total_amount"`
}

type ShipmentRepository interface {
	Create(ctx context.Context, s model.Shipment) (int64, error)
	FindByID(ctx context.Context, id int64) (model.Shipment, error)
	FindByOrderNo(ctx context.Context, orderNo string) (model.Shipment, error)
	ListWithOrder(ctx context.Context) ([]ShipmentWithOrder, error)
	Update(ctx context.Context, s model.Shipment) error
	Delete(ctx context.Context, id int64) error
}
