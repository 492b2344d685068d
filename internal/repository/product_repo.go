package repository

import (
	"errors"

	"ucstore-inventory/internal/model"
	"ucstore-inventory/pkg/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lowStockCondition mirrors model.Product.IsLowStock.
const lowStockCondition = "stock <= CASE WHEN min_stock > 0 THEN min_stock ELSE 10 END"

type ProductRepository interface {
	WithTx(tx *gorm.DB) ProductRepository
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id string) (*model.Product, error)
	FindForUpdate(id string) (*model.Product, error)
	FindLowStock() ([]model.Product, error)
	Exists(id string) (bool, error)
	Update(product *model.Product) error
	UpdateStock(id string, newStock int) error
	Delete(id string) error
	Count() (int64, error)
	SeedDefaults() (int, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepo{tx}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at ASC").Order("id ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindForUpdate locks the row on databases that support it. SQLite serialises writers instead.
func (r *productRepo) FindForUpdate(id string) (*model.Product, error) {
	q := r.db
	if !database.IsSQLite(r.db) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var product model.Product
	if err := q.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindLowStock() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where(lowStockCondition).Order("stock ASC").Order("id ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) Exists(id string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) UpdateStock(id string, newStock int) error {
	return r.db.Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock", newStock).Error
}

func (r *productRepo) Delete(id string) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

// SeedDefaults loads the demo catalog when the table is empty and reports how many rows it added.
func (r *productRepo) SeedDefaults() (int, error) {
	count, err := r.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	seeded := 0
	for _, p := range model.DefaultProducts {
		product := p
		var existing model.Product
		err := r.db.First(&existing, "id = ?", product.ID).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return seeded, err
		}
		if err := r.db.Create(&product).Error; err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}
