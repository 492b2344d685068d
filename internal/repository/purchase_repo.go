package repository

import (
	"time"

	"ucstore-inventory/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository interface {
	WithTx(tx *gorm.DB) PurchaseRepository
	Create(purchase *model.Purchase) error
	FindAll() ([]model.Purchase, error)
	FindByID(id string) (*model.Purchase, error)
	FindByProduct(productID string) ([]model.Purchase, error)
	FindSince(since time.Time) ([]model.Purchase, error)
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) WithTx(tx *gorm.DB) PurchaseRepository {
	return &purchaseRepo{tx}
}

func (r *purchaseRepo) Create(purchase *model.Purchase) error {
	return r.db.Create(purchase).Error
}

func (r *purchaseRepo) FindAll() ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Order("date DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindByID(id string) (*model.Purchase, error) {
	var purchase model.Purchase
	if err := r.db.First(&purchase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *purchaseRepo) FindByProduct(productID string) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Where("product_id = ?", productID).Order("date DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) FindSince(since time.Time) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Where("date > ?", since.UTC()).Order("date DESC").Find(&purchases).Error
	return purchases, err
}
