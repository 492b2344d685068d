package service

import (
	"sort"
	"time"

	"ucstore-inventory/internal/model"
	"ucstore-inventory/internal/repository"
)

const (
	DefaultWindowDays = 7
	MaxWindowDays     = 366
	DefaultTopLimit   = 5
)

type StatsService interface {
	GetSummary() (*Summary, error)
	GetRecentActivity(days int) (*RecentActivity, error)
	GetMovement(days int) ([]DailyMovement, error)
	GetTopProducts(limit int) ([]TopProduct, error)
	GetMonthlyRevenue() ([]MonthlyRevenue, error)
}

// Summary leads with totalSales, totalPurchases and productsCount; the rest feed the dashboard cards.
type Summary struct {
	TotalSales     float64 `json:"totalSales"`
	TotalPurchases float64 `json:"totalPurchases"`
	ProductsCount  int64   `json:"productsCount"`
	SalesCount     int64   `json:"salesCount"`
	PurchasesCount int64   `json:"purchasesCount"`
	LowStockCount  int64   `json:"lowStockCount"`
	InventoryValue float64 `json:"inventoryValue"`
	TotalStock     int64   `json:"totalStock"`
	AvgOrderValue  float64 `json:"avgOrderValue"`
	GrossProfit    float64 `json:"grossProfit"`
}

type RecentActivity struct {
	Days      int              `json:"days"`
	Sales     []model.Sale     `json:"sales"`
	Purchases []model.Purchase `json:"purchases"`
}

type DailyMovement struct {
	Date      string  `json:"date"`
	Sold      int     `json:"sold"`
	Purchased int     `json:"purchased"`
	Revenue   float64 `json:"revenue"`
	Spend     float64 `json:"spend"`
}

type TopProduct struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	QtySold   int64   `json:"qtySold"`
	Revenue   float64 `json:"revenue"`
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type statsService struct {
	statsRepo    repository.StatsRepository
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	now          func() time.Time
}

func NewStatsService(statsRepo repository.StatsRepository, pRepo repository.ProductRepository, sRepo repository.SaleRepository, puRepo repository.PurchaseRepository) StatsService {
	return &statsService{
		statsRepo:    statsRepo,
		productRepo:  pRepo,
		saleRepo:     sRepo,
		purchaseRepo: puRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *statsService) GetSummary() (*Summary, error) {
	t, err := s.statsRepo.GetTotals()
	if err != nil {
		return nil, err
	}

	totalSales := model.SumTotals(t.TotalSales)
	totalPurchases := model.SumTotals(t.TotalPurchases)
	return &Summary{
		TotalSales:     totalSales,
		TotalPurchases: totalPurchases,
		ProductsCount:  t.ProductsCount,
		SalesCount:     t.SalesCount,
		PurchasesCount: t.PurchasesCount,
		LowStockCount:  t.LowStockCount,
		InventoryValue: model.SumTotals(t.InventoryValue),
		TotalStock:     t.TotalStock,
		AvgOrderValue:  model.Ratio(totalSales, float64(t.SalesCount)),
		GrossProfit:    model.SumTotals(totalSales, -totalPurchases),
	}, nil
}

func clampDays(days int) int {
	if days <= 0 {
		return DefaultWindowDays
	}
	return min(days, MaxWindowDays)
}

func (s *statsService) GetRecentActivity(days int) (*RecentActivity, error) {
	days = clampDays(days)
	since := s.now().AddDate(0, 0, -days)

	sales, err := s.saleRepo.FindSince(since)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.FindSince(since)
	if err != nil {
		return nil, err
	}
	return &RecentActivity{Days: days, Sales: sales, Purchases: purchases}, nil
}

// GetMovement buckets quantities and money per UTC day, oldest first, including empty days.
func (s *statsService) GetMovement(days int) ([]DailyMovement, error) {
	days = clampDays(days)
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(days - 1))

	buckets := make([]DailyMovement, days)
	index := make(map[string]int, days)
	for i := range buckets {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		buckets[i] = DailyMovement{Date: date}
		index[date] = i
	}

	sales, err := s.saleRepo.FindSince(start.Add(-time.Nanosecond))
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.FindSince(start.Add(-time.Nanosecond))
	if err != nil {
		return nil, err
	}

	for _, sale := range sales {
		if i, ok := index[sale.Date.UTC().Format("2006-01-02")]; ok {
			buckets[i].Sold += sale.Qty
			buckets[i].Revenue = model.SumTotals(buckets[i].Revenue, sale.Total)
		}
	}
	for _, p := range purchases {
		if i, ok := index[p.Date.UTC().Format("2006-01-02")]; ok {
			buckets[i].Purchased += p.Qty
			buckets[i].Spend = model.SumTotals(buckets[i].Spend, p.Total)
		}
	}
	return buckets, nil
}

func (s *statsService) GetTopProducts(limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	rows, err := s.statsRepo.GetTopProducts(limit)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	top := make([]TopProduct, 0, len(rows))
	for _, r := range rows {
		top = append(top, TopProduct{
			ProductID: r.ProductID,
			Name:      names[r.ProductID],
			QtySold:   r.QtySold,
			Revenue:   model.SumTotals(r.Revenue),
		})
	}
	return top, nil
}

func (s *statsService) GetMonthlyRevenue() ([]MonthlyRevenue, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, err
	}

	byMonth := map[string]*MonthlyRevenue{}
	for _, sale := range sales {
		month := sale.Date.UTC().Format("2006-01")
		m, ok := byMonth[month]
		if !ok {
			m = &MonthlyRevenue{Month: month}
			byMonth[month] = m
		}
		m.Revenue = model.SumTotals(m.Revenue, sale.Total)
		m.Orders++
	}

	out := make([]MonthlyRevenue, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}
