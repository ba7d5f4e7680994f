package services

import (
	"context"
	"time"

	"allure-backend/models"

	"github.com/shopspring/decimal"
)

const topListLimit = 4

type Revenue struct {
	Booked    decimal.Decimal `json:"booked"`
	Collected decimal.Decimal `json:"collected"`
}

type GarmentSummary struct {
	GarmentType models.GarmentType `json:"garment_type"`
	Label       string             `json:"label"`
	Count       int                `json:"count"`
	Revenue     decimal.Decimal    `json:"revenue"`
}

type CustomerSummary struct {
	Name   string          `json:"name"`
	Orders int             `json:"orders"`
	Spent  decimal.Decimal `json:"spent"`
}

type QuickStatistics struct {
	TotalCustomers   int64           `json:"total_customers"`
	TotalOrders      int64           `json:"total_orders"`
	AvgMonthlyOrders float64         `json:"avg_monthly_orders"`
	AvgOrderValue    decimal.Decimal `json:"avg_order_value"`
}

type ReportRepository interface {
	// Revenue sums order totals and advances for orders created in [start, end).
	Revenue(ctx context.Context, start, end time.Time) (Revenue, error)
	TopGarments(ctx context.Context, start, end time.Time, limit int) ([]GarmentSummary, error)
	TopCustomers(ctx context.Context, start, end time.Time, limit int) ([]CustomerSummary, error)
	QuickStats(ctx context.Context) (QuickStatistics, error)
}

// AnalyticsSummary is the revenue report across month, quarter and year.
type AnalyticsSummary struct {
	CurrentMonth   Revenue           `json:"current_month"`
	MonthGrowth    float64           `json:"month_growth"`
	CurrentQuarter Revenue           `json:"current_quarter"`
	QuarterGrowth  float64           `json:"quarter_growth"`
	CurrentYear    Revenue           `json:"current_year"`
	YearGrowth     float64           `json:"year_growth"`
	TopGarments    []GarmentSummary  `json:"top_garments"`
	TopCustomers   []CustomerSummary `json:"top_customers"`
	QuickStats     QuickStatistics   `json:"quick_stats"`
}

type ReportService struct {
	repo     ReportRepository
	calendar Calendar
}

func NewReportService(repo ReportRepository, calendar Calendar) *ReportService {
	return &ReportService{repo: repo, calendar: calendar}
}

type period struct{ start, end time.Time }

func (s *ReportService) Analytics(ctx context.Context) (*AnalyticsSummary, error) {
	now := s.calendar.Now
	if now == nil {
		now = time.Now
	}
	loc := s.calendar.Loc
	if loc == nil {
		loc = time.UTC
	}
	t := now().In(loc)

	month := monthPeriod(t)
	quarter := quarterPeriod(t)
	year := yearPeriod(t)

	var out AnalyticsSummary
	var err error
	if out.CurrentMonth, out.MonthGrowth, err = s.compare(ctx, month, monthPeriod(month.start.AddDate(0, -1, 0))); err != nil {
		return nil, err
	}
	if out.CurrentQuarter, out.QuarterGrowth, err = s.compare(ctx, quarter, quarterPeriod(quarter.start.AddDate(0, -3, 0))); err != nil {
		return nil, err
	}
	if out.CurrentYear, out.YearGrowth, err = s.compare(ctx, year, yearPeriod(year.start.AddDate(-1, 0, 0))); err != nil {
		return nil, err
	}

	if out.TopGarments, err = s.repo.TopGarments(ctx, month.start, month.end, topListLimit); err != nil {
		return nil, err
	}
	for i := range out.TopGarments {
		out.TopGarments[i].Label = out.TopGarments[i].GarmentType.Label()
	}
	if out.TopCustomers, err = s.repo.TopCustomers(ctx, month.start, month.end, topListLimit); err != nil {
		return nil, err
	}
	if out.QuickStats, err = s.repo.QuickStats(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ReportService) compare(ctx context.Context, current, previous period) (Revenue, float64, error) {
	cur, err := s.repo.Revenue(ctx, current.start, current.end)
	if err != nil {
		return Revenue{}, 0, err
	}
	prev, err := s.repo.Revenue(ctx, previous.start, previous.end)
	if err != nil {
		return Revenue{}, 0, err
	}
	return cur, GrowthPercentage(cur.Booked, prev.Booked), nil
}

func monthPeriod(t time.Time) period {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return period{start, start.AddDate(0, 1, 0)}
}

func quarterPeriod(t time.Time) period {
	quarter := (int(t.Month()) - 1) / 3
	start := time.Date(t.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, t.Location())
	return period{start, start.AddDate(0, 3, 0)}
}

func yearPeriod(t time.Time) period {
	start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	return period{start, start.AddDate(1, 0, 0)}
}

// GrowthPercentage is 100 when growing from nothing and 0 when both are zero.
func GrowthPercentage(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsZero() {
			return 0
		}
		return 100
	}
	growth, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return growth
}
