package services

import (
	"context"
	"time"

	"allure-backend/models"

	"github.com/shopspring/decimal"
)

const (
	upcomingWindowDays = 7
	recentOrdersLimit  = 10
)

type DashboardRepository interface {
	// Overdue lists undelivered orders due before day, oldest first.
	Overdue(ctx context.Context, day time.Time) ([]models.Order, error)
	// DueOn lists undelivered orders due on day, newest first.
	DueOn(ctx context.Context, day time.Time) ([]models.Order, error)
	// Upcoming lists undelivered orders due after from up to and including to.
	Upcoming(ctx context.Context, from, to time.Time) ([]models.Order, error)
	Recent(ctx context.Context, limit int) ([]models.Order, error)
	// OpenTotals counts undelivered orders and sums their clamped balances.
	OpenTotals(ctx context.Context) (int64, decimal.Decimal, error)
}

type DashboardSummary struct {
	Today        string          `json:"today"`
	Overdue      []models.Order  `json:"overdue"`
	DueToday     []models.Order  `json:"due_today"`
	Upcoming     []models.Order  `json:"upcoming"`
	Recent       []models.Order  `json:"recent"`
	PendingCount int64           `json:"pending_count"`
	TotalBalance decimal.Decimal `json:"total_balance"`
}

type DashboardService struct {
	repo     DashboardRepository
	calendar Calendar
}

func NewDashboardService(repo DashboardRepository, calendar Calendar) *DashboardService {
	return &DashboardService{repo: repo, calendar: calendar}
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	today := s.calendar.Today()

	overdue, err := s.repo.Overdue(ctx, today)
	if err != nil {
		return nil, err
	}
	dueToday, err := s.repo.DueOn(ctx, today)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.repo.Upcoming(ctx, today, today.AddDate(0, 0, upcomingWindowDays))
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.Recent(ctx, recentOrdersLimit)
	if err != nil {
		return nil, err
	}
	pending, balance, err := s.repo.OpenTotals(ctx)
	if err != nil {
		return nil, err
	}

	for _, list := range [][]models.Order{overdue, dueToday, upcoming, recent} {
		for i := range list {
			list[i].Derive(today)
		}
	}
	return &DashboardSummary{
		Today:        today.Format("2006-01-02"),
		Overdue:      nonNil(overdue),
		DueToday:     nonNil(dueToday),
		Upcoming:     nonNil(upcoming),
		Recent:       nonNil(recent),
		PendingCount: pending,
		TotalBalance: balance,
	}, nil
}

func nonNil(orders []models.Order) []models.Order {
	if orders == nil {
		return []models.Order{}
	}
	return orders
}
