package store

import (
	"context"
	"time"

	"allure-backend/models"
	"allure-backend/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportStore struct {
	db *gorm.DB
}

func NewReportStore(db *gorm.DB) *ReportStore {
	return &ReportStore{db: db}
}

func (s *ReportStore) Revenue(ctx context.Context, start, end time.Time) (services.Revenue, error) {
	var rev services.Revenue
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS booked, COALESCE(SUM(advance_paid), 0) AS collected").
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&rev).Error
	return rev, err
}

func (s *ReportStore) TopGarments(ctx context.Context, start, end time.Time, limit int) ([]services.GarmentSummary, error) {
	var garments []services.GarmentSummary
	err := s.db.WithContext(ctx).Table("order_items").
		Select("order_items.garment_type, SUM(order_items.quantity) AS count, SUM(order_items.price * order_items.quantity) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", start, end).
		Group("order_items.garment_type").
		Order("revenue DESC").
		Limit(limit).
		Scan(&garments).Error
	return garments, err
}

func (s *ReportStore) TopCustomers(ctx context.Context, start, end time.Time, limit int) ([]services.CustomerSummary, error) {
	var customers []services.CustomerSummary
	err := s.db.WithContext(ctx).Table("orders").
		Select("customers.full_name AS name, COUNT(orders.id) AS orders, SUM(orders.total_amount) AS spent").
		Joins("JOIN customers ON customers.id = orders.customer_id").
		Where("orders.created_at >= ? AND orders.created_at < ?", start, end).
		Group("customers.id, customers.full_name").
		Order("spent DESC").
		Limit(limit).
		Scan(&customers).Error
	return customers, err
}

func (s *ReportStore) QuickStats(ctx context.Context) (services.QuickStatistics, error) {
	var stats services.QuickStatistics
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Customer{}).Count(&stats.TotalCustomers).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return stats, err
	}

	var avgOrders *float64
	err := db.Raw(`
		SELECT AVG(orders) FROM (
			SELECT COUNT(*) AS orders
			FROM orders
			GROUP BY DATE_TRUNC('month', created_at)
		) monthly_orders
	`).Scan(&avgOrders).Error
	if err != nil {
		return stats, err
	}
	if avgOrders != nil {
		stats.AvgMonthlyOrders = *avgOrders
	}

	var booked decimal.Decimal
	if err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&booked).Error; err != nil {
		return stats, err
	}
	if stats.TotalOrders > 0 {
		stats.AvgOrderValue = booked.Div(decimal.NewFromInt(stats.TotalOrders)).Round(2)
	}
	return stats, nil
}
