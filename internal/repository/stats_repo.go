package repository

import (
	"ucstore-inventory/internal/model"

	"gorm.io/gorm"
)

type StatsRepository interface {
	GetTotals() (*Totals, error)
	GetTopProducts(limit int) ([]ProductSalesRow, error)
}

// Totals is the raw material for the dashboard summary.
type Totals struct {
	TotalSales     float64
	TotalPurchases float64
	SalesCount     int64
	PurchasesCount int64
	ProductsCount  int64
	LowStockCount  int64
	TotalStock     int64
	InventoryValue float64
}

type ProductSalesRow struct {
	ProductID string  `json:"productId"`
	QtySold   int64   `json:"qtySold"`
	Revenue   float64 `json:"revenue"`
}

type statsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) StatsRepository {
	return &statsRepo{db}
}

func (r *statsRepo) GetTotals() (*Totals, error) {
	var t Totals

	if err := r.db.Model(&model.Sale{}).Select("COALESCE(SUM(total), 0)").Scan(&t.TotalSales).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Sale{}).Count(&t.SalesCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Purchase{}).Select("COALESCE(SUM(total), 0)").Scan(&t.TotalPurchases).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Purchase{}).Count(&t.PurchasesCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Count(&t.ProductsCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Where(lowStockCondition).Count(&t.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Select("COALESCE(SUM(stock), 0)").Scan(&t.TotalStock).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Select("COALESCE(SUM(stock * price), 0)").Scan(&t.InventoryValue).Error; err != nil {
		return nil, err
	}

	return &t, nil
}

// GetTopProducts ranks products by units sold. Orphaned sales still count under their productId.
func (r *statsRepo) GetTopProducts(limit int) ([]ProductSalesRow, error) {
	var rows []ProductSalesRow
	err := r.db.Model(&model.Sale{}).
		Select("product_id, COALESCE(SUM(qty), 0) AS qty_sold, COALESCE(SUM(total), 0) AS revenue").
		Group("product_id").
		Order("qty_sold DESC").
		Order("product_id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
