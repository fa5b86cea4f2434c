package model

import "time"

type Shipment struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNo string `gorm:"type:varchar(32);not null;index" json:"order_no"`

	Name    string `gorm:"type:varchar(255)" json:"name"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	Country string `gorm:"type:varchar(100)" json:"country"`
	Address string `gorm:"type:text" json:"address"`
	Pin     string `gorm:"type:varchar(10)" json:"pin"`
	Phone   string `gorm:"type:varchar(20)" json:"phone"`
	Mobile  string `gorm:"type:varchar(20)" json:"mobile"`

	Quantity    int64      `json:"quantity"`
	TotalAmount float64    `json:"total_amount"`
	OrderDate   *time.Time `json:"order_date"`

	Waybill         string     `gorm:"type:varchar(100)" json:"waybill"`
	Weight          string     `gorm:"type:varchar(50)" json:"weight"`
	ShipmentLength  float64    `json:"shipment_length"`
	ShipmentBreadth float64    `json:"shipment_breadth"`
	ShipmentHeight  float64    `json:"shipment_height"`
	PaymentMode     string     `gorm:"type:varchar(20)" json:"payment_mode"`
	CODAmount       float64    `gorm:"column:cod_amount" json:"cod_amount"`
	ProductsDesc    string     `gorm:"type:text" json:"products_desc"`
	ShippingMode    string     `gorm:"type:varchar(50)" json:"shipping_mode"`
	FragileItem     bool       `json:"fragile_item"`
	ShipDate        *time.Time `json:"ship_date"`
	BarcodeValue    *string    `gorm:"type:varchar(100)" json:"barcode_value"`
	BarcodeImage    *string    `gorm:"type:text" json:"barcode_image"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
