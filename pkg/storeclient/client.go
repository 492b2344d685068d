// Package storeclient mirrors the store's tables in memory for dashboards and
// demo front ends. Mutations go to the API first; when the API cannot be
// reached they are applied to the local copy instead and the failure is kept
// in Err, so the caller can keep working in memory.
package storeclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"ucstore-inventory/internal/model"
	"ucstore-inventory/pkg/idgen"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

const maxNotifications = 50

var (
	ErrProductNotFound = errors.New("Product not found")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidPrice    = errors.New("price must be greater than zero")
	ErrInvalidCost     = errors.New("cost must be greater than zero")
)

// APIError is a request the server answered and rejected.
type APIError struct {
	Status  int
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

// StockError is the local equivalent of the server's oversell rejection.
type StockError struct {
	Available int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("Insufficient stock. Available: %d", e.Available)
}

type Notification struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// ProductPatch carries only the fields to change.
type ProductPatch struct {
	Name     *string  `json:"name,omitempty"`
	Category *string  `json:"category,omitempty"`
	Supplier *string  `json:"supplier,omitempty"`
	Stock    *int     `json:"stock,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	MinStock *int     `json:"minStock,omitempty"`
}

type SaleInput struct {
	ProductID    string  `json:"productId"`
	Qty          int     `json:"qty"`
	Price        float64 `json:"price,omitempty"` // 0 uses the product price
	CustomerName string  `json:"customerName,omitempty"`
}

type PurchaseInput struct {
	ProductID    string  `json:"productId"`
	Qty          int     `json:"qty"`
	Cost         float64 `json:"cost"`
	SupplierName string  `json:"supplierName,omitempty"`
}

type Client struct {
	http *resty.Client

	mu            sync.RWMutex
	products      []model.Product
	sales         []model.Sale
	purchases     []model.Purchase
	notifications []Notification
	err           error

	now   func() time.Time
	newID idgen.Generator
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

func WithToken(token string) Option {
	return func(c *Client) { c.http.SetAuthToken(token) }
}

// New starts from the demo catalog until Load succeeds.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:     resty.New().SetBaseURL(baseURL).SetTimeout(10 * time.Second),
		products: append([]model.Product(nil), model.DefaultProducts...),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    idgen.New,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// unreachable reports whether a call failed before the server could answer it.
func unreachable(resp *resty.Response, err error) bool {
	return err != nil || resp.StatusCode() >= http.StatusInternalServerError
}

func rejection(resp *resty.Response, apiErr *APIError) error {
	apiErr.Status = resp.StatusCode()
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(apiErr.Status)
	}
	return apiErr
}

func transportError(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("api %d", resp.StatusCode())
}

// Load fetches products, sales and purchases in parallel. On failure the
// current tables are kept and the error is returned and remembered.
func (c *Client) Load(ctx context.Context) error {
	var (
		products  []model.Product
		sales     []model.Sale
		purchases []model.Purchase
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.get(ctx, "/api/products", &products) })
	g.Go(func() error { return c.get(ctx, "/api/sales", &sales) })
	g.Go(func() error { return c.get(ctx, "/api/purchases", &purchases) })

	if err := g.Wait(); err != nil {
		err = fmt.Errorf("load store data, working in memory: %w", err)
		c.setErr(err)
		return err
	}

	c.mu.Lock()
	c.products = products
	c.sales = sales
	c.purchases = purchases
	c.err = nil
	c.mu.Unlock()
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	var apiErr APIError
	resp, err := c.http.R().SetContext(ctx).SetResult(out).SetError(&apiErr).Get(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return rejection(resp, &apiErr)
	}
	return nil
}

// productBody leaves out what the server should default.
func productBody(p model.Product) map[string]interface{} {
	body := map[string]interface{}{
		"name":     p.Name,
		"category": p.Category,
		"supplier": p.Supplier,
		"stock":    p.Stock,
		"price":    p.Price,
	}
	if p.ID != "" {
		body["id"] = p.ID
	}
	if p.MinStock > 0 {
		body["minStock"] = p.MinStock
	}
	return body
}

// AddProduct creates p; a zero MinStock means the default threshold.
func (c *Client) AddProduct(ctx context.Context, p model.Product) (model.Product, error) {
	var created model.Product
	var apiErr APIError
	resp, err := c.http.R().SetContext(ctx).SetBody(productBody(p)).SetResult(&created).SetError(&apiErr).Post("/api/products")

	switch {
	case unreachable(resp, err):
		c.setErr(transportError(resp, err))
		created = p
		if created.ID == "" {
			created.ID = c.newID(idgen.PrefixProduct)
		}
		if created.MinStock == 0 {
			created.MinStock = model.DefaultMinStock
		}
		created.CreatedAt = c.now()
	case resp.IsError():
		return model.Product{}, rejection(resp, &apiErr)
	}

	c.mu.Lock()
	c.products = append(c.products, created)
	c.mu.Unlock()
	c.notify("product", "Product added: "+created.Name)
	return created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (model.Product, error) {
	var updated model.Product
	var apiErr APIError
	resp, err := c.http.R().SetContext(ctx).SetBody(patch).SetResult(&updated).SetError(&apiErr).Put("/api/products/" + id)

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.productIndex(id)
	switch {
	case unreachable(resp, err):
		c.err = transportError(resp, err)
		if i < 0 {
			return model.Product{}, ErrProductNotFound
		}
		updated = c.products[i]
		patch.apply(&updated)
		now := c.now()
		updated.UpdatedAt = &now
	case resp.IsError():
		return model.Product{}, rejection(resp, &apiErr)
	}

	if i >= 0 {
		c.products[i] = updated
	} else {
		c.products = append(c.products, updated)
	}
	c.pushLocked("product", "Product updated: "+updated.Name)
	return updated, nil
}

func (p ProductPatch) apply(dst *model.Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Supplier != nil {
		dst.Supplier = *p.Supplier
	}
	if p.Stock != nil {
		dst.Stock = *p.Stock
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.MinStock != nil {
		dst.MinStock = *p.MinStock
	}
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	var apiErr APIError
	resp, err := c.http.R().SetContext(ctx).SetError(&apiErr).Delete("/api/products/" + id)
	switch {
	case unreachable(resp, err):
		c.setErr(transportError(resp, err))
	case resp.IsError():
		return rejection(resp, &apiErr)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.productIndex(id); i >= 0 {
		c.products = append(c.products[:i], c.products[i+1:]...)
	}
	c.pushLocked("product", "Product deleted: "+id)
	return nil
}

type saleResult struct {
	Sale    model.Sale    `json:"sale"`
	Product model.Product `json:"product"`
}

func (c *Client) RecordSale(ctx context.Context, in SaleInput) (model.Sale, error) {
	var result saleResult
	var apiErr APIError
	resp, err := c.http.R().SetContext(ctx).SetBody(in).SetResult(&result).SetError(&apiErr).Post("/api/sales")

	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case unreachable(resp, err):
		c.err = transportError(resp, err)
		i := c.productIndex(in.ProductID)
		if i < 0 {
			return model.Sale{}, ErrProductNotFound
		}
		if in.Qty <= 0 {
			return model.Sale{}, ErrInvalidQuantity
		}
		price := in.Price
		if price == 0 {
			price = c.products[i].Price
		}
		if price <= 0 {
			return model.Sale{}, ErrInvalidPrice
		}
		if in.Qty > c.products[i].Stock {
			return model.Sale{}, &StockError{Available: c.products[i].Stock}
		}
		customer := in.CustomerName
		if customer == "" {
			customer = model.DefaultCustomerName
		}
		result.Product = c.products[i]
		result.Product.Stock = max(0, result.Product.Stock-in.Qty)
		result.Sale = model.Sale{
			ID:           c.newID(idgen.PrefixSale),
			ProductID:    in.ProductID,
			Qty:          in.Qty,
			Price:        price,
			Total:        model.LineTotal(in.Qty, price),
			CustomerName: customer,
			Date:         c.now(),
		}
	case resp.IsError():
		return model.Sale{}, rejection(resp, &apiErr)
	}

	c.replaceLocked(result.Product)
	c.sales = append([]model.Sale{result.Sale}, c.sales...)
	c.pushLocked("sale", fmt.Sprintf("Sale recorded: %d × %s", result.Sale.Qty, result.Product.Name))
	return result.Sale, nil
}

type purchaseResult struct {
	Purchase model.Purchase `json:"purchase"`
	Product  model.Product  `json:"product"`
}

func (c *Client) RecordPurchase(ctx context.Context, in PurchaseInput) (model.Purchase, error) {
	var result purchaseResult
	var apiErr APIError
	resp, err := c.http.R().SetContext(ctx).SetBody(in).SetResult(&result).SetError(&apiErr).Post("/api/purchases")

	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case unreachable(resp, err):
		c.err = transportError(resp, err)
		i := c.productIndex(in.ProductID)
		if i < 0 {
			return model.Purchase{}, ErrProductNotFound
		}
		if in.Qty <= 0 {
			return model.Purchase{}, ErrInvalidQuantity
		}
		if in.Cost <= 0 {
			return model.Purchase{}, ErrInvalidCost
		}
		supplier := in.SupplierName
		if supplier == "" {
			supplier = c.products[i].Supplier
		}
		result.Product = c.products[i]
		result.Product.Stock += in.Qty
		result.Purchase = model.Purchase{
			ID:           c.newID(idgen.PrefixPurchase),
			ProductID:    in.ProductID,
			Qty:          in.Qty,
			Cost:         in.Cost,
			Total:        model.LineTotal(in.Qty, in.Cost),
			SupplierName: supplier,
			Date:         c.now(),
		}
	case resp.IsError():
		return model.Purchase{}, rejection(resp, &apiErr)
	}

	c.replaceLocked(result.Product)
	c.purchases = append([]model.Purchase{result.Purchase}, c.purchases...)
	c.pushLocked("purchase", fmt.Sprintf("Stock updated: +%d for %s", result.Purchase.Qty, result.Product.Name))
	return result.Purchase, nil
}

func (c *Client) productIndex(id string) int {
	for i := range c.products {
		if c.products[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Client) replaceLocked(p model.Product) {
	if i := c.productIndex(p.ID); i >= 0 {
		c.products[i] = p
	}
}

func (c *Client) notify(kind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushLocked(kind, message)
}

func (c *Client) pushLocked(kind, message string) {
	now := c.now()
	n := Notification{
		ID:      idgen.NewAt("N", now),
		Type:    kind,
		Message: message,
		Time:    now,
	}
	c.notifications = append([]Notification{n}, c.notifications...)
	if len(c.notifications) > maxNotifications {
		c.notifications = c.notifications[:maxNotifications]
	}
}

func (c *Client) setErr(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}
