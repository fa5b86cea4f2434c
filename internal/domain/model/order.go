package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending     OrderStatus = "PENDING"
	OrderStatusOrderPlaced OrderStatus = "ORDER_PLACED"
	OrderStatusShipped     OrderStatus = "SHIPPED"
	OrderStatusDelivered   OrderStatus = "DELIVERED"
)

type PaymentStatus string

const (
	PaymentStatusNotPaid PaymentStatus = "NOT_PAID"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// LineItemは注文作成時に固定するスナップショット。
// 後からカタログを編集しても過去の請求書は変わらない。
type LineItem struct {
	ProductID int64   `json:"id"`
	Title     string  `json:"title"`
	Qty       int64   `json:"qty"`
	Weight    string  `json:"weight,omitempty"`
	Units     string  `json:"units,omitempty"`
	Price     float64 `json:"price"`
	SalePrice float64 `json:"sale_price,omitempty"`
	HSN       string  `json:"hsn,omitempty"`
	Img       string  `json:"img,omitempty"`
}

type Order struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNo string `gorm:"type:varchar(32);not null;uniqueIndex" json:"order_no"`

	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	City    string `gorm:"type:varchar(100);not null" json:"city"`
	State   string `gorm:"type:varchar(100);not null" json:"state"`
	Country string `gorm:"type:varchar(100);not null" json:"country"`
	Address string `gorm:"type:text;not null" json:"address"`
	Pin     string `gorm:"type:varchar(10);not null" json:"pin"`
	Email   string `gorm:"type:varchar(255)" json:"email"`
	Phone   string `gorm:"type:varchar(20)" json:"phone"`
	Mobile  string `gorm:"type:varchar(20);not null" json:"mobile"`

	Quantity    int64     `gorm:"not null;default:1" json:"quantity"`
	Weight      string    `gorm:"type:varchar(50)" json:"weight"`
	Units       string    `gorm:"type:varchar(50)" json:"units"`
	TotalAmount float64   `gorm:"not null" json:"total_amount"`
	OrderDate   time.Time `gorm:"not null" json:"order_date"`

	// 生JSONで持つ。中身が壊れていても行自体は読める
	ProductsJSON datatypes.JSON `gorm:"column:products_json" json:"-"`

	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;index" json:"payment_status"`

	RazorpayPaymentID *string `gorm:"type:varchar(100)" json:"razorpay_payment_id"`
	RazorpayOrderID   *string `gorm:"type:varchar(100)" json:"razorpay_order_id"`

	InvoiceNo   *string    `gorm:"type:varchar(40);uniqueIndex" json:"invoice_no"`
	InvoiceDate *time.Time `json:"invoice_date"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// LineItemsはスナップショットを復元する。壊れたJSONは空扱い
// （請求書側が合計金額からのフォールバック行を作る）。
func (o Order) LineItems() []LineItem {
	if len(o.ProductsJSON) == 0 {
		return nil
	}
	var items []LineItem
	if err := json.Unmarshal(o.ProductsJSON, &items); err != nil {
		return nil
	}
	return items
}
