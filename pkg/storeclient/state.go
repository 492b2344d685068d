package storeclient

import (
	"ucstore-inventory/internal/model"
)

func (c *Client) Products() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Product(nil), c.products...)
}

// Product looks up a mirrored product by id.
func (c *Client) Product(id string) (model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.productIndex(id); i >= 0 {
		return c.products[i], true
	}
	return model.Product{}, false
}

// Categories and Suppliers are the product form's pick lists.
func (c *Client) Categories() []string {
	return append([]string(nil), model.Categories...)
}

func (c *Client) Suppliers() []string {
	return append([]string(nil), model.Suppliers...)
}

// Sales are newest first.
func (c *Client) Sales() []model.Sale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Sale(nil), c.sales...)
}

func (c *Client) Purchases() []model.Purchase {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Purchase(nil), c.purchases...)
}

func (c *Client) Notifications() []Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Notification(nil), c.notifications...)
}

func (c *Client) ClearNotifications() {
	c.mu.Lock()
	c.notifications = nil
	c.mu.Unlock()
}

// Err is the last failure that made the client fall back to local state.
func (c *Client) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *Client) ClearError() {
	c.setErr(nil)
}

func (c *Client) LowStock() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var low []model.Product
	for i := range c.products {
		if c.products[i].IsLowStock() {
			low = append(low, c.products[i])
		}
	}
	return low
}

func (c *Client) TotalInventoryValue() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	values := make([]float64, 0, len(c.products))
	for i := range c.products {
		values = append(values, c.products[i].Value())
	}
	return model.SumTotals(values...)
}

func (c *Client) TotalSalesValue() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	totals := make([]float64, 0, len(c.sales))
	for _, s := range c.sales {
		totals = append(totals, s.Total)
	}
	return model.SumTotals(totals...)
}

func (c *Client) TotalPurchaseValue() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	totals := make([]float64, 0, len(c.purchases))
	for _, p := range c.purchases {
		totals = append(totals, p.Total)
	}
	return model.SumTotals(totals...)
}

func (c *Client) ProductSales(productID string) []model.Sale {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []model.Sale
	for _, s := range c.sales {
		if s.ProductID == productID {
			out = append(out, s)
		}
	}
	return out
}

// RecentActivity returns what was recorded within the last days.
func (c *Client) RecentActivity(days int) ([]model.Sale, []model.Purchase) {
	since := c.now().AddDate(0, 0, -days)

	c.mu.RLock()
	defer c.mu.RUnlock()
	var sales []model.Sale
	for _, s := range c.sales {
		if s.Date.After(since) {
			sales = append(sales, s)
		}
	}
	var purchases []model.Purchase
	for _, p := range c.purchases {
		if p.Date.After(since) {
			purchases = append(purchases, p)
		}
	}
	return sales, purchases
}
