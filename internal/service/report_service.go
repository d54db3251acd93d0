package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"clinic-pos/internal/domain"
	"clinic-pos/internal/repository"

	"github.com/google/uuid"
)

// MedicineSales aggregates sold units and revenue for one medicine
type MedicineSales struct {
	MedicineID uuid.UUID `json:"medicine_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	Revenue    float64   `json:"revenue"`
}

// DailySales is the per-day sales breakdown within a report period
type DailySales struct {
	Date    string  `json:"date"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// StockSummary is a report row for a medicine needing attention
type StockSummary struct {
	Name       string `json:"name"`
	Quantity   int    `json:"current_stock"`
	MinStock   int    `json:"min_stock,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
}

// SalesReport summarizes sales activity and inventory health for a period
type SalesReport struct {
	Period            string          `json:"period"`
	TotalRevenue      float64         `json:"total_revenue"`
	TotalSales        int             `json:"total_sales"`
	AverageSaleValue  float64         `json:"average_sale_value"`
	TotalCustomers    int             `json:"total_customers"`
	TotalMedicines    int             `json:"total_medicines"`
	TopMedicines      []MedicineSales `json:"top_medicines"`
	LowStockMedicines []StockSummary  `json:"low_stock_medicines"`
	ExpiringMedicines []StockSummary  `json:"expiring_medicines"`
	DailySales        []DailySales    `json:"daily_sales"`
}

// DashboardStats is the at-a-glance view of the clinic
type DashboardStats struct {
	TotalMedicines      int     `json:"total_medicines"`
	TotalCustomers      int     `json:"total_customers"`
	TotalSales          int     `json:"total_sales"`
	TotalRevenue        float64 `json:"total_revenue"`
	TodaySales          int     `json:"today_sales"`
	TodayRevenue        float64 `json:"today_revenue"`
	MonthRevenue        float64 `json:"month_revenue"`
	TotalStock          int     `json:"total_stock"`
	TotalStockValue     float64 `json:"total_stock_value"`
	LowStockCount       int     `json:"low_stock_count"`
	ExpiringSoonCount   int     `json:"expiring_soon_count"`
	UnreadNotifications int     `json:"unread_notifications"`
}

// ReportService computes read-only aggregates over already committed data
type ReportService interface {
	SalesReport(ctx context.Context, from, to time.Time) (*SalesReport, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

type reportService struct {
	saleRepo         repository.SaleRepository
	medicineRepo     repository.MedicineRepository
	customerRepo     repository.CustomerRepository
	notificationRepo repository.NotificationRepository
	now              func() time.Time
}

// NewReportService creates a new instance of ReportService
func NewReportService(
	saleRepo repository.SaleRepository,
	medicineRepo repository.MedicineRepository,
	customerRepo repository.CustomerRepository,
	notificationRepo repository.NotificationRepository,
) ReportService {
	return &reportService{
		saleRepo:         saleRepo,
		medicineRepo:     medicineRepo,
		customerRepo:     customerRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

const reportSaleLimit = 10000

// SalesReport builds the sales and inventory report for [from, to]
func (s *reportService) SalesReport(ctx context.Context, from, to time.Time) (*SalesReport, error) {
	sales, err := s.saleRepo.List(ctx, reportSaleLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales for report: %w", err)
	}

	medicines, err := s.medicineRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load medicines for report: %w", err)
	}

	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers for report: %w", err)
	}

	return BuildSalesReport(sales, medicines, len(customers), from, to, s.now()), nil
}

// BuildSalesReport computes the report over already loaded data. Pure.
func BuildSalesReport(sales []*domain.Sale, medicines []*domain.Medicine, customerCount int, from, to, now time.Time) *SalesReport {
	report := &SalesReport{
		Period:            fmt.Sprintf("%s to %s", from.Format("2006-01-02"), to.Format("2006-01-02")),
		TotalCustomers:    customerCount,
		TotalMedicines:    len(medicines),
		TopMedicines:      []MedicineSales{},
		LowStockMedicines: []StockSummary{},
		ExpiringMedicines: []StockSummary{},
		DailySales:        []DailySales{},
	}

	perMedicine := make(map[uuid.UUID]*MedicineSales)
	perDay := make(map[string]*DailySales)

	for _, sale := range sales {
		if sale.CreatedAt.Before(from) || sale.CreatedAt.After(to) {
			continue
		}

		report.TotalSales++
		report.TotalRevenue += sale.TotalAmount

		for _, item := range sale.Items {
			stats, ok := perMedicine[item.MedicineID]
			if !ok {
				stats = &MedicineSales{MedicineID: item.MedicineID, Name: item.MedicineName}
				perMedicine[item.MedicineID] = stats
			}
			stats.Quantity += item.Quantity
			stats.Revenue += item.Total
		}

		day := sale.CreatedAt.Format("2006-01-02")
		daily, ok := perDay[day]
		if !ok {
			daily = &DailySales{Date: day}
			perDay[day] = daily
		}
		daily.Count++
		daily.Revenue += sale.TotalAmount
	}

	if report.TotalSales > 0 {
		report.AverageSaleValue = report.TotalRevenue / float64(report.TotalSales)
	}

	for _, stats := range perMedicine {
		report.TopMedicines = append(report.TopMedicines, *stats)
	}
	sort.Slice(report.TopMedicines, func(i, j int) bool {
		if report.TopMedicines[i].Quantity != report.TopMedicines[j].Quantity {
			return report.TopMedicines[i].Quantity > report.TopMedicines[j].Quantity
		}
		return report.TopMedicines[i].Name < report.TopMedicines[j].Name
	})
	if len(report.TopMedicines) > 10 {
		report.TopMedicines = report.TopMedicines[:10]
	}

	for _, daily := range perDay {
		report.DailySales = append(report.DailySales, *daily)
	}
	sort.Slice(report.DailySales, func(i, j int) bool {
		return report.DailySales[i].Date < report.DailySales[j].Date
	})

	for _, medicine := range medicines {
		if medicine.IsLowStock() {
			report.LowStockMedicines = append(report.LowStockMedicines, StockSummary{
				Name:     medicine.Name,
				Quantity: medicine.Quantity,
				MinStock: medicine.MinQuantity,
			})
		}
		// Unlike the expiry alert rule, the report also lists stock that has
		// already expired.
		if medicine.DaysUntilExpiry(now) <= expiryAlertWindowDays {
			report.ExpiringMedicines = append(report.ExpiringMedicines, StockSummary{
				Name:       medicine.Name,
				Quantity:   medicine.Quantity,
				ExpiryDate: medicine.ExpiryDate.Format("2006-01-02"),
			})
		}
	}

	return report
}

// DashboardStats computes the at-a-glance counters for the dashboard
func (s *reportService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	sales, err := s.saleRepo.List(ctx, reportSaleLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales for dashboard: %w", err)
	}

	medicines, err := s.medicineRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load medicines for dashboard: %w", err)
	}

	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers for dashboard: %w", err)
	}

	notifications, err := s.notificationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications for dashboard: %w", err)
	}

	now := s.now()
	today := now.Format("2006-01-02")
	month := now.Format("2006-01")

	stats := &DashboardStats{
		TotalMedicines: len(medicines),
		TotalCustomers: len(customers),
		TotalSales:     len(sales),
	}

	for _, sale := range sales {
		stats.TotalRevenue += sale.TotalAmount
		if sale.CreatedAt.Format("2006-01-02") == today {
			stats.TodaySales++
			stats.TodayRevenue += sale.TotalAmount
		}
		if sale.CreatedAt.Format("2006-01") == month {
			stats.MonthRevenue += sale.TotalAmount
		}
	}

	for _, medicine := range medicines {
		stats.TotalStock += medicine.Quantity
		stats.TotalStockValue += medicine.SellingPrice * float64(medicine.Quantity)
		if medicine.IsLowStock() {
			stats.LowStockCount++
		}
		days := medicine.DaysUntilExpiry(now)
		if days > 0 && days <= expiryAlertWindowDays {
			stats.ExpiringSoonCount++
		}
	}

	for _, notification := range notifications {
		if !notification.IsRead {
			stats.UnreadNotifications++
		}
	}

	return stats, nil
}
