package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"ucstore-inventory/internal/model"
	"ucstore-inventory/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStats(f *fixture, now time.Time) *statsService {
	s := NewStatsService(repository.NewStatsRepo(f.db), f.products, f.sales, f.purchases).(*statsService)
	s.now = func() time.Time { return now }
	return s
}

func TestSummaryEmptyLedger(t *testing.T) {
	f := newFixture(t)
	stats := newStats(f, f.clock.t)

	sum, err := stats.GetSummary()
	require.NoError(t, err)

	assert.Equal(t, 0.0, sum.TotalSales)
	assert.Equal(t, 0.0, sum.TotalPurchases)
	assert.Equal(t, int64(4), sum.ProductsCount)
	assert.Equal(t, int64(200), sum.TotalStock)
	assert.Equal(t, int64(0), sum.LowStockCount)
	assert.Equal(t, 0.0, sum.AvgOrderValue)
	assert.InDelta(t, 5416.22, sum.InventoryValue, 0.001)
}

func TestSummaryAfterActivity(t *testing.T) {
	f := newFixture(t)
	_, err := f.inventory.RecordSale(&RecordSaleRequest{ProductID: "P-1001", Qty: 3})
	require.NoError(t, err)
	_, err = f.inventory.RecordPurchase(&RecordPurchaseRequest{ProductID: "P-1002", Qty: 12, Cost: 11.25})
	require.NoError(t, err)

	sum, err := newStats(f, f.clock.t).GetSummary()
	require.NoError(t, err)

	assert.Equal(t, 17.97, sum.TotalSales)
	assert.Equal(t, 135.0, sum.TotalPurchases)
	assert.Equal(t, int64(1), sum.SalesCount)
	assert.Equal(t, int64(1), sum.PurchasesCount)
	assert.Equal(t, 17.97, sum.AvgOrderValue)
	assert.Equal(t, -117.03, sum.GrossProfit)
	assert.Equal(t, int64(209), sum.TotalStock)
}

func TestMovementBucketsByDay(t *testing.T) {
	f := newFixture(t)
	_, err := f.inventory.RecordSale(&RecordSaleRequest{ProductID: "P-1001", Qty: 2})
	require.NoError(t, err)
	_, err = f.inventory.RecordPurchase(&RecordPurchaseRequest{ProductID: "P-1001", Qty: 5, Cost: 3})
	require.NoError(t, err)

	older := model.Sale{ID: "S-old", ProductID: "P-1002", Qty: 1, Price: 19.99, Total: 19.99, Date: time.Date(2024, 4, 30, 23, 30, 0, 0, time.UTC)}
	require.NoError(t, f.sales.Create(&older))
	outside := model.Sale{ID: "S-ancient", ProductID: "P-1002", Qty: 9, Price: 1, Total: 9, Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, f.sales.Create(&outside))

	moves, err := newStats(f, time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)).GetMovement(3)
	require.NoError(t, err)
	require.Len(t, moves, 3)

	assert.Equal(t, "2024-04-29", moves[0].Date)
	assert.Equal(t, 0, moves[0].Sold)

	assert.Equal(t, "2024-04-30", moves[1].Date)
	assert.Equal(t, 1, moves[1].Sold)
	assert.Equal(t, 19.99, moves[1].Revenue)

	assert.Equal(t, "2024-05-01", moves[2].Date)
	assert.Equal(t, 2, moves[2].Sold)
	assert.Equal(t, 5, moves[2].Purchased)
	assert.Equal(t, 11.98, moves[2].Revenue)
	assert.Equal(t, 15.0, moves[2].Spend)
}

func TestMovementDefaultsWindow(t *testing.T) {
	f := newFixture(t)

	moves, err := newStats(f, f.clock.t).GetMovement(0)
	require.NoError(t, err)
	assert.Len(t, moves, DefaultWindowDays)

	moves, err = newStats(f, f.clock.t).GetMovement(10000)
	require.NoError(t, err)
	assert.Len(t, moves, MaxWindowDays)
}

func TestRecentActivity(t *testing.T) {
	f := newFixture(t)
	_, err := f.inventory.RecordSale(&RecordSaleRequest{ProductID: "P-1003", Qty: 1})
	require.NoError(t, err)
	old := model.Purchase{ID: "PU-old", ProductID: "P-1003", Qty: 1, Cost: 1, Total: 1, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, f.purchases.Create(&old))

	recent, err := newStats(f, f.clock.t).GetRecentActivity(7)
	require.NoError(t, err)

	assert.Equal(t, 7, recent.Days)
	assert.Len(t, recent.Sales, 1)
	assert.Empty(t, recent.Purchases)
}

func TestTopProducts(t *testing.T) {
	f := newFixture(t)
	for _, req := range []RecordSaleRequest{
		{ProductID: "P-1002", Qty: 4},
		{ProductID: "P-1001", Qty: 1},
		{ProductID: "P-1002", Qty: 2},
		{ProductID: "P-1003", Qty: 3},
	} {
		req := req
		_, err := f.inventory.RecordSale(&req)
		require.NoError(t, err)
	}

	top, err := newStats(f, f.clock.t).GetTopProducts(2)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, "P-1002", top[0].ProductID)
	assert.Equal(t, "Wireless Mouse", top[0].Name)
	assert.Equal(t, int64(6), top[0].QtySold)
	assert.Equal(t, 119.94, top[0].Revenue)
	assert.Equal(t, "P-1003", top[1].ProductID)
}

func TestMonthlyRevenue(t *testing.T) {
	f := newFixture(t)
	_, err := f.inventory.RecordSale(&RecordSaleRequest{ProductID: "P-1001", Qty: 1})
	require.NoError(t, err)
	april := model.Sale{ID: "S-apr", ProductID: "P-1001", Qty: 2, Price: 5, Total: 10, Date: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, f.sales.Create(&april))

	months, err := newStats(f, f.clock.t).GetMonthlyRevenue()
	require.NoError(t, err)

	assert.Equal(t, []MonthlyRevenue{
		{Month: "2024-04", Revenue: 10, Orders: 1},
		{Month: "2024-05", Revenue: 5.99, Orders: 1},
	}, months)
}

func TestReportsCSV(t *testing.T) {
	f := newFixture(t)
	_, err := f.inventory.RecordSale(&RecordSaleRequest{ProductID: "P-1003", Qty: 2})
	require.NoError(t, err)
	_, err = f.inventory.RecordPurchase(&RecordPurchaseRequest{ProductID: "P-1003", Qty: 1, Cost: 50})
	require.NoError(t, err)

	reports := NewReportService(f.products, f.sales, f.purchases)

	var products bytes.Buffer
	require.NoError(t, reports.WriteProducts(&products))
	lines := strings.Split(strings.TrimSpace(products.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "ID,Name,Category,Supplier,Stock,Price", lines[0])
	assert.Contains(t, products.String(), `P-1004,"27"" Monitor",Displays,ViewWorld,10,199.99`)

	var sales bytes.Buffer
	require.NoError(t, reports.WriteSales(&sales))
	assert.Equal(t, "Date,Product ID,Quantity,Total\n2024-05-01T09:00:01Z,P-1003,2,158.00\n", sales.String())

	fin, err := reports.Financials()
	require.NoError(t, err)
	assert.Equal(t, 158.0, fin.Revenue)
	assert.Equal(t, 50.0, fin.Costs)
	assert.Equal(t, 108.0, fin.NetProfit)
	assert.Equal(t, 68.35, fin.ProfitMargin)
	assert.Equal(t, 1, fin.TotalOrders)

	var financials bytes.Buffer
	require.NoError(t, reports.WriteFinancials(&financials))
	assert.Contains(t, financials.String(), "Profit Margin,68.35%\n")
	assert.Contains(t, financials.String(), "Total Orders,1\n")
}

func TestFinancialsWithoutSales(t *testing.T) {
	f := newFixture(t)

	fin, err := NewReportService(f.products, f.sales, f.purchases).Financials()
	require.NoError(t, err)
	assert.Equal(t, 0.0, fin.ProfitMargin)
	assert.Equal(t, 0.0, fin.AvgOrderValue)
}
