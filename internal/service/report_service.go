package service

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"ucstore-inventory/internal/model"
	"ucstore-inventory/internal/repository"
)

// ReportService renders the exports offered on the reports page as CSV.
type ReportService interface {
	WriteProducts(w io.Writer) error
	WriteSales(w io.Writer) error
	WriteFinancials(w io.Writer) error
	Financials() (*FinancialReport, error)
}

type FinancialReport struct {
	Revenue       float64 `json:"revenue"`
	Costs         float64 `json:"costs"`
	NetProfit     float64 `json:"netProfit"`
	ProfitMargin  float64 `json:"profitMargin"`
	AvgOrderValue float64 `json:"avgOrderValue"`
	TotalOrders   int     `json:"totalOrders"`
}

type reportService struct {
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
}

func NewReportService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, puRepo repository.PurchaseRepository) ReportService {
	return &reportService{productRepo: pRepo, saleRepo: sRepo, purchaseRepo: puRepo}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func (s *reportService) WriteProducts(w io.Writer) error {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Write([]string{"ID", "Name", "Category", "Supplier", "Stock", "Price"})
	for _, p := range products {
		cw.Write([]string{p.ID, p.Name, p.Category, p.Supplier, strconv.Itoa(p.Stock), money(p.Price)})
	}
	cw.Flush()
	return cw.Error()
}

func (s *reportService) WriteSales(w io.Writer) error {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Write([]string{"Date", "Product ID", "Quantity", "Total"})
	for _, sale := range sales {
		cw.Write([]string{sale.Date.UTC().Format(time.RFC3339), sale.ProductID, strconv.Itoa(sale.Qty), money(sale.Total)})
	}
	cw.Flush()
	return cw.Error()
}

// Financials uses purchase totals (qty × cost) as costs.
func (s *reportService) Financials() (*FinancialReport, error) {
	sales, err := s.saleRepo.FindAll()
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.FindAll()
	if err != nil {
		return nil, err
	}

	revenues := make([]float64, 0, len(sales))
	for _, sale := range sales {
		revenues = append(revenues, sale.Total)
	}
	costs := make([]float64, 0, len(purchases))
	for _, p := range purchases {
		costs = append(costs, p.Total)
	}

	r := &FinancialReport{
		Revenue:     model.SumTotals(revenues...),
		Costs:       model.SumTotals(costs...),
		TotalOrders: len(sales),
	}
	r.NetProfit = model.SumTotals(r.Revenue, -r.Costs)
	r.ProfitMargin = model.Ratio(r.NetProfit*100, r.Revenue)
	r.AvgOrderValue = model.Ratio(r.Revenue, float64(r.TotalOrders))
	return r, nil
}

func (s *reportService) WriteFinancials(w io.Writer) error {
	r, err := s.Financials()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.WriteAll([][]string{
		{"Metric", "Value"},
		{"Total Revenue", money(r.Revenue)},
		{"Total Costs", money(r.Costs)},
		{"Net Profit", money(r.NetProfit)},
		{"Profit Margin", money(r.ProfitMargin) + "%"},
		{"Average Order Value", money(r.AvgOrderValue)},
		{"Total Orders", strconv.Itoa(r.TotalOrders)},
	})
	return cw.Error()
}
