package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	FindByOrderNo(ctx context.Context, orderNo string) (model.Order, error)

	// ワークフロー用。行ロックを取って読む（同じ注文の同時更新を直列化）
	FindByOrderNoForUpdate(ctx context.Context, orderNo string) (model.Order, error)

	ListAll(ctx context.Context) ([]model.Order, error)

	// Excel出力用。invoice_dateが範囲内の注文
	ListByInvoiceDateRange(ctx context.Context, from time.Time, to time.Time) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (int64, error)

	// ステータスと請求書番号/日付をまとめて更新（SHIPPED遷移で発番する）
	UpdateStatus(ctx context.Context, orderNo string, status model.OrderStatus, invoiceNo *string, invoiceDate *time.Time) error

	// 決済確定。payment_status=PAID / status=ORDER_PLACED / ゲートウェイ参照を保存
	UpdatePayment(ctx context.Context, orderNo string, paymentID string, gatewayOrderID string) error
}
