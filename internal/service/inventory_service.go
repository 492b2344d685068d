package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ucstore-inventory/internal/model"
	"ucstore-inventory/internal/repository"
	"ucstore-inventory/internal/ws"
	"ucstore-inventory/pkg/idgen"

	"gorm.io/gorm"
)

type InventoryService interface {
	ListProducts() ([]model.Product, error)
	ListLowStock() ([]model.Product, error)
	GetProduct(id string) (*model.Product, error)
	CreateProduct(req *CreateProductRequest) (*model.Product, error)
	UpdateProduct(id string, req *UpdateProductRequest) (*model.Product, error)
	DeleteProduct(id string) error

	ListSales(productID string) ([]model.Sale, error)
	RecordSale(req *RecordSaleRequest) (*SaleResult, error)

	ListPurchases(productID string) ([]model.Purchase, error)
	RecordPurchase(req *RecordPurchaseRequest) (*PurchaseResult, error)
}

type CreateProductRequest struct {
	ID       string   `json:"id" validate:"omitempty,max=64"`
	Name     string   `json:"name" validate:"required,max=255"`
	Category string   `json:"category" validate:"max=100"`
	Supplier string   `json:"supplier" validate:"max=100"`
	Stock    *int     `json:"stock" validate:"omitempty,gte=0"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	MinStock *int     `json:"minStock" validate:"omitempty,gte=0"`
}

// UpdateProductRequest only touches the fields present in the body.
type UpdateProductRequest struct {
	Name     *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Category *string  `json:"category" validate:"omitempty,max=100"`
	Supplier *string  `json:"supplier" validate:"omitempty,max=100"`
	Stock    *int     `json:"stock" validate:"omitempty,gte=0"`
	Price    *float64 `json:"price" validate:"omitempty,gte=0"`
	MinStock *int     `json:"minStock" validate:"omitempty,gte=0"`
}

type RecordSaleRequest struct {
	ProductID    string   `json:"productId" validate:"required"`
	Qty          int      `json:"qty" validate:"gt=0"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"` // defaults to the product price
	CustomerName string   `json:"customerName" validate:"max=255"`
}

type RecordPurchaseRequest struct {
	ProductID    string  `json:"productId" validate:"required"`
	Qty          int     `json:"qty" validate:"gt=0"`
	Cost         float64 `json:"cost" validate:"gte=0"`
	SupplierName string  `json:"supplierName" validate:"max=255"`
}

type SaleResult struct {
	Sale    model.Sale    `json:"sale"`
	Product model.Product `json:"product"`
}

type PurchaseResult struct {
	Purchase model.Purchase `json:"purchase"`
	Product  model.Product  `json:"product"`
}

type inventoryService struct {
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	db           *gorm.DB
	events       ws.Publisher
	now          func() time.Time
	newID        idgen.Generator
}

func NewInventoryService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, puRepo repository.PurchaseRepository, db *gorm.DB, events ws.Publisher) InventoryService {
	if events == nil {
		events = ws.Nop{}
	}
	return &inventoryService{
		productRepo:  pRepo,
		saleRepo:     sRepo,
		purchaseRepo: puRepo,
		db:           db,
		events:       events,
		now:          func() time.Time { return time.Now().UTC() },
		newID:        idgen.New,
	}
}

func (s *inventoryService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *inventoryService) ListLowStock() ([]model.Product, error) {
	return s.productRepo.FindLowStock()
}

func (s *inventoryService) GetProduct(id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

func (s *inventoryService) CreateProduct(req *CreateProductRequest) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = s.newID(idgen.PrefixProduct)
	} else {
		exists, err := s.productRepo.Exists(id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrProductExists
		}
	}

	product := &model.Product{
		ID:        id,
		Name:      req.Name,
		Category:  req.Category,
		Supplier:  req.Supplier,
		MinStock:  model.DefaultMinStock,
		CreatedAt: s.now(),
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.MinStock != nil {
		product.MinStock = *req.MinStock
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	slog.Info("product created", "product_id", product.ID, "name", product.Name)
	s.events.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "product_created",
		Message: fmt.Sprintf("Product added: %s", product.Name),
		Data:    product,
	})
	return product, nil
}

func (s *inventoryService) UpdateProduct(id string, req *UpdateProductRequest) (*model.Product, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var updated model.Product
	var oldStock int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)
		existing, err := products.FindForUpdate(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}
		oldStock = existing.Stock

		if req.Name != nil {
			existing.Name = *req.Name
		}
		if req.Category != nil {
			existing.Category = *req.Category
		}
		if req.Supplier != nil {
			existing.Supplier = *req.Supplier
		}
		if req.Stock != nil {
			existing.Stock = *req.Stock
		}
		if req.Price != nil {
			existing.Price = *req.Price
		}
		if req.MinStock != nil {
			existing.MinStock = *req.MinStock
		}
		now := s.now()
		existing.UpdatedAt = &now

		if err := products.Update(existing); err != nil {
			return err
		}
		updated = *existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "product_updated",
		Message: fmt.Sprintf("Product updated: %s", updated.Name),
		Data: map[string]interface{}{
			"product":   updated,
			"old_stock": oldStock,
		},
	})
	return &updated, nil
}

// DeleteProduct is idempotent and leaves the product's sales and purchases in place.
func (s *inventoryService) DeleteProduct(id string) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	slog.Info("product deleted", "product_id", id)
	s.events.Publish(ws.Event{
		Type:   "stock_update",
		Action: "product_deleted",
		Data:   map[string]string{"id": id},
	})
	return nil
}

func (s *inventoryService) ListSales(productID string) ([]model.Sale, error) {
	if productID != "" {
		return s.saleRepo.FindByProduct(productID)
	}
	return s.saleRepo.FindAll()
}

// RecordSale checks availability, decrements stock and stores the sale in one transaction.
func (s *inventoryService) RecordSale(req *RecordSaleRequest) (*SaleResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var result SaleResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)
		product, err := products.FindForUpdate(req.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}

		if req.Qty > product.Stock {
			return &StockError{Available: product.Stock}
		}

		price := product.Price
		if req.Price != nil {
			price = *req.Price
		}
		customer := req.CustomerName
		if customer == "" {
			customer = model.DefaultCustomerName
		}

		newStock := max(0, product.Stock-req.Qty)
		if err := products.UpdateStock(product.ID, newStock); err != nil {
			return err
		}

		sale := model.Sale{
			ID:           s.newID(idgen.PrefixSale),
			ProductID:    product.ID,
			Qty:          req.Qty,
			Price:        price,
			Total:        model.LineTotal(req.Qty, price),
			CustomerName: customer,
			Date:         s.now(),
		}
		if err := s.saleRepo.WithTx(tx).Create(&sale); err != nil {
			return err
		}

		product.Stock = newStock
		result = SaleResult{Sale: sale, Product: *product}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("sale recorded",
		"sale_id", result.Sale.ID,
		"product_id", result.Product.ID,
		"qty", result.Sale.Qty,
		"stock", result.Product.Stock,
	)
	s.events.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "sale_recorded",
		Message: fmt.Sprintf("Sale recorded: %d × %s", result.Sale.Qty, result.Product.Name),
		Data:    result,
	})
	if result.Product.IsLowStock() {
		s.events.Publish(ws.Event{
			Type:    "alert",
			Action:  "low_stock",
			Message: fmt.Sprintf("Low stock: %s (%d left)", result.Product.Name, result.Product.Stock),
			Data:    result.Product,
		})
	}
	return &result, nil
}

func (s *inventoryService) ListPurchases(productID string) ([]model.Purchase, error) {
	if productID != "" {
		return s.purchaseRepo.FindByProduct(productID)
	}
	return s.purchaseRepo.FindAll()
}

// RecordPurchase increments stock and stores the purchase in one transaction.
func (s *inventoryService) RecordPurchase(req *RecordPurchaseRequest) (*PurchaseResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var result PurchaseResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		products := s.productRepo.WithTx(tx)
		product, err := products.FindForUpdate(req.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		if err != nil {
			return err
		}

		supplier := req.SupplierName
		if supplier == "" {
			supplier = product.Supplier
		}

		newStock := product.Stock + req.Qty
		if err := products.UpdateStock(product.ID, newStock); err != nil {
			return err
		}

		purchase := model.Purchase{
			ID:           s.newID(idgen.PrefixPurchase),
			ProductID:    product.ID,
			Qty:          req.Qty,
			Cost:         req.Cost,
			Total:        model.LineTotal(req.Qty, req.Cost),
			SupplierName: supplier,
			Date:         s.now(),
		}
		if err := s.purchaseRepo.WithTx(tx).Create(&purchase); err != nil {
			return err
		}

		product.Stock = newStock
		result = PurchaseResult{Purchase: purchase, Product: *product}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("purchase recorded",
		"purchase_id", result.Purchase.ID,
		"product_id", result.Product.ID,
		"qty", result.Purchase.Qty,
		"stock", result.Product.Stock,
	)
	s.events.Publish(ws.Event{
		Type:    "stock_update",
		Action:  "purchase_recorded",
		Message: fmt.Sprintf("Stock updated: +%d for %s", result.Purchase.Qty, result.Product.Name),
		Data:    result,
	})
	return &result, nil
}
