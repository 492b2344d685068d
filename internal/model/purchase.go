package model

import "time"

type Purchase struct {
	ID           string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	ProductID    string    `gorm:"type:varchar(64);not null;index" json:"productId"`
	Qty          int       `gorm:"not null" json:"qty"`
	Cost         float64   `gorm:"not null" json:"cost"`
	Total        float64   `gorm:"not null" json:"total"`
	SupplierName string    `gorm:"type:varchar(255)" json:"supplierName"`
	Date         time.Time `gorm:"not null;index" json:"date"`
}
