package model

import "time"

const DefaultCustomerName = "Walk-in"

type Sale struct {
	ID           string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	ProductID    string    `gorm:"type:varchar(64);not null;index" json:"productId"`
	Qty          int       `gorm:"not null" json:"qty"`
	Price        float64   `gorm:"not null" json:"price"`
	Total        float64   `gorm:"not null" json:"total"`
	CustomerName string    `gorm:"type:varchar(255)" json:"customerName"`
	Date         time.Time `gorm:"not null;index" json:"date"`
}
