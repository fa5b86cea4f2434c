package model

import "time"

type Category struct {
	ID     int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"category_name"`
	Status string     `gorm:"type:varchar(20);not null;default:'Active'" json:"status"`
	Date   *time.Time `json:"date"`
	Image  *string    `gorm:"type:varchar(500)" json:"image"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
