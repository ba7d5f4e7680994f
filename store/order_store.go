package store

import (
	"context"
	"fmt"
	"time"

	"allure-backend/models"
	"allure-backend/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const nextOrderNumberSQL = "SELECT nextval('order_number_seq')"

type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order, number services.NumberFunc) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	var seq int64
	if err := tx.Raw(nextOrderNumberSQL).Scan(&seq).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("next order number: %w", err)
	}
	order.OrderNumber = number(seq)

	if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
		tx.Rollback()
		return translate(err)
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		if err := tx.Omit(clause.Associations).Create(&order.Items[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("item %d: %w", i+1, translate(err))
		}
	}

	return tx.Commit().Error
}

func (s *OrderStore) AddDesignImage(ctx context.Context, img *models.DesignImage) error {
	return translate(s.db.WithContext(ctx).Create(img).Error)
}

func (s *OrderStore) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Items.DesignImages", func(db *gorm.DB) *gorm.DB { return db.Order("uploaded_at ASC") }).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *OrderStore) List(ctx context.Context, f services.OrderFilter) ([]models.Order, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if f.Status != "" {
			db = db.Where("orders.status = ?", f.Status)
		}
		if f.CustomerID != uuid.Nil {
			db = db.Where("orders.customer_id = ?", f.CustomerID)
		}
		if f.Query != "" {
			like := containsPattern(f.Query)
			db = db.Joins("JOIN customers ON customers.id = orders.customer_id").
				Where("orders.order_number ILIKE ? OR customers.full_name ILIKE ? OR customers.phone ILIKE ?", like, like, like)
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := s.db.WithContext(ctx).Model(&models.Order{}).Scopes(filter).
		Preload("Customer").
		Order("orders.created_at DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&orders).Error
	return orders, total, err
}

func (s *OrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *OrderStore) AddPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND advance_paid + ? <= total_amount", id, amount).
		Update("advance_paid", gorm.Expr("advance_paid + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return services.ErrNotFound
	}
	return services.ErrOverpayment
}

func (s *OrderStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *OrderStore) DueBy(ctx context.Context, day time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Where("status <> ? AND delivery_date <= ?", models.StatusDelivered, day.Format(dateLayout)).
		Order("delivery_date ASC, created_at ASC").
		Find(&orders).Error
	return orders, err
}
