package repository

import (
	"time"

	"ucstore-inventory/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	WithTx(tx *gorm.DB) SaleRepository
	Create(sale *model.Sale) error
	FindAll() ([]model.Sale, error)
	FindByID(id string) (*model.Sale, error)
	FindByProduct(productID string) ([]model.Sale, error)
	FindSince(since time.Time) ([]model.Sale, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) WithTx(tx *gorm.DB) SaleRepository {
	return &saleRepo{tx}
}

func (r *saleRepo) Create(sale *model.Sale) error {
	return r.db.Create(sale).Error
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Order("date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id string) (*model.Sale, error) {
	var sale model.Sale
	if err := r.db.First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindByProduct(productID string) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Where("product_id = ?", productID).Order("date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindSince(since time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Where("date > ?", since.UTC()).Order("date DESC").Find(&sales).Error
	return sales, err
}
