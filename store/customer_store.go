package store

import (
	"context"

	"allure-backend/models"
	"allure-backend/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerStore struct {
	db *gorm.DB
}

func NewCustomerStore(db *gorm.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

func (s *CustomerStore) Create(ctx context.Context, c *models.Customer) error {
	return translate(s.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (s *CustomerStore) Get(ctx context.Context, id uuid.UUID, withOrders bool) (*models.Customer, error) {
	q := s.db.WithContext(ctx)
	if withOrders {
		q = q.Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") })
	}
	var c models.Customer
	if err := q.First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Update writes every column, so cleared optional fields become NULL.
func (s *CustomerStore) Update(ctx context.Context, c *models.Customer) error {
	res := s.db.WithContext(ctx).Model(c).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(c)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *CustomerStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *CustomerStore) List(ctx context.Context, query string, page, pageSize int) ([]models.Customer, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if query == "" {
			return db
		}
		like := containsPattern(query)
		return db.Where("full_name ILIKE ? OR phone ILIKE ?", like, like)
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Customer{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []models.Customer
	err := s.db.WithContext(ctx).Scopes(filter).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&customers).Error
	return customers, total, err
}

func (s *CustomerStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (s *CustomerStore) OrderIDs(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", id).Pluck("id", &ids).Error
	return ids, err
}
