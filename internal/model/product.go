package model

import "time"

const DefaultMinStock = 10

type Product struct {
	ID        string     `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	Category  string     `gorm:"type:varchar(100)" json:"category"`
	Supplier  string     `gorm:"type:varchar(100)" json:"supplier"`
	Stock     int        `gorm:"not null" json:"stock"`
	Price     float64    `gorm:"not null" json:"price"`
	MinStock  int        `gorm:"not null" json:"minStock"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

// IsLowStock flags products at or below their reorder threshold.
func (p *Product) IsLowStock() bool {
	threshold := p.MinStock
	if threshold <= 0 {
		threshold = DefaultMinStock
	}
	return p.Stock <= threshold
}

// Value is stock on hand times unit price.
func (p *Product) Value() float64 {
	return LineTotal(p.Stock, p.Price)
}

// DefaultProducts is the demo catalog loaded into an empty database.
var DefaultProducts = []Product{
	{ID: "P-1001", Name: "USB-C Cable", Category: "Accessories", Supplier: "TechSupply", Stock: 120, Price: 5.99, MinStock: 20},
	{ID: "P-1002", Name: "Wireless Mouse", Category: "Peripherals", Supplier: "ClickCo", Stock: 48, Price: 19.99, MinStock: 10},
	{ID: "P-1003", Name: "Mechanical Keyboard", Category: "Peripherals", Supplier: "KeyWorks", Stock: 22, Price: 79.0, MinStock: 5},
	{ID: "P-1004", Name: "27\" Monitor", Category: "Displays", Supplier: "ViewWorld", Stock: 10, Price: 199.99, MinStock: 3},
}

// Categories and Suppliers are the pick lists offered by the product form.
var (
	Categories = []string{"Accessories", "Peripherals", "Displays", "Storage", "Networking"}
	Suppliers  = []string{"TechSupply", "ClickCo", "KeyWorks", "ViewWorld", "DataFlow"}
)
