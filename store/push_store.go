package store

import (
	"context"

	"allure-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PushStore struct {
	db *gorm.DB
}

func NewPushStore(db *gorm.DB) *PushStore {
	return &PushStore{db: db}
}

// Upsert inserts the subscription or replaces the keys of the existing
// (user, endpoint) row.
func (s *PushStore) Upsert(ctx context.Context, sub *models.PushSubscription) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"keys_p256dh", "keys_auth", "updated_at"}),
	}).Create(sub).Error
}

func (s *PushStore) DeleteByEndpoint(ctx context.Context, userID uuid.UUID, endpoint string) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND endpoint = ?", userID, endpoint).
		Delete(&models.PushSubscription{}).Error
}

func (s *PushStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PushSubscription{}).Error
}

func (s *PushStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.PushSubscription, error) {
	var subs []models.PushSubscription
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&subs).Error
	return subs, err
}

func (s *PushStore) Subscribers(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).Model(&models.PushSubscription{}).Distinct().Pluck("user_id", &ids).Error
	return ids, err
}
