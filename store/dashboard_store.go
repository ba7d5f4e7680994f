package store

import (
	"context"
	"time"

	"allure-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type DashboardStore struct {
	db *gorm.DB
}

func NewDashboardStore(db *gorm.DB) *DashboardStore {
	return &DashboardStore{db: db}
}

func (s *DashboardStore) open(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Customer").Where("status <> ?", models.StatusDelivered)
}

func (s *DashboardStore) Overdue(ctx context.Context, day time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.open(ctx).
		Where("delivery_date < ?", day.Format(dateLayout)).
		Order("delivery_date ASC").
		Find(&orders).Error
	return orders, err
}

func (s *DashboardStore) DueOn(ctx context.Context, day time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.open(ctx).
		Where("delivery_date = ?", day.Format(dateLayout)).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (s *DashboardStore) Upcoming(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.open(ctx).
		Where("delivery_date > ? AND delivery_date <= ?", from.Format(dateLayout), to.Format(dateLayout)).
		Order("delivery_date ASC").
		Find(&orders).Error
	return orders, err
}

func (s *DashboardStore) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (s *DashboardStore) OpenTotals(ctx context.Context) (int64, decimal.Decimal, error) {
	var row struct {
		Pending int64
		Balance decimal.Decimal
	}
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("COUNT(*) AS pending, COALESCE(SUM(GREATEST(total_amount - advance_paid, 0)), 0) AS balance").
		Where("status <> ?", models.StatusDelivered).
		Scan(&row).Error
	return row.Pending, row.Balance, err
}
