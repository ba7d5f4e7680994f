package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PushSubscription is one browser registered for web push. A user may have
// several, one per endpoint.
type PushSubscription struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_push_user_endpoint,priority:1" json:"user_id"`
	Endpoint   string    `gorm:"type:text;not null;uniqueIndex:idx_push_user_endpoint,priority:2" json:"endpoint"`
	KeysP256dh string    `gorm:"column:keys_p256dh;not null" json:"keys_p256dh"`
	KeysAuth   string    `gorm:"column:keys_auth;not null" json:"keys_auth"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *PushSubscription) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
