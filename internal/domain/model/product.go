package model

import "time"

type Product struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string  `gorm:"type:varchar(255);not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"type:varchar(100);index" json:"category"`
	HSN         *string `gorm:"type:varchar(20)" json:"hsn"`
	Status      string  `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	Units       string  `gorm:"type:varchar(50)" json:"units"`
	Weight      string  `gorm:"type:varchar(50)" json:"weight"`
	Price       float64 `gorm:"not null" json:"price"`
	SalePrice   float64 `json:"sale_price"`
	Stock       int64   `gorm:"not null;default:0" json:"stock"`

	// 画像はバケットのオブジェクトキーを保存する（URLは返すとき組み立てる）
	Image1 *string `gorm:"type:varchar(500)" json:"image1"`
	Image2 *string `gorm:"type:varchar(500)" json:"image2"`
	Image3 *string `gorm:"type:varchar(500)" json:"image3"`
	Image4 *string `gorm:"type:varchar(500)" json:"image4"`
	Image5 *string `gorm:"type:varchar(500)" json:"image5"`
	Image6 *string `gorm:"type:varchar(500)" json:"image6"`
	Video  *string `gorm:"type:varchar(500)" json:"video"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
