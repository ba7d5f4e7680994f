package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID      uuid.UUID       `gorm:"type:uuid;index;not null" json:"order_id"`
	GarmentType  GarmentType     `gorm:"type:varchar(20);not null" json:"garment_type"`
	Description  *string         `gorm:"type:text" json:"description"`
	Measurements Measurements    `gorm:"type:jsonb;not null" json:"measurements"`
	Quantity     int             `gorm:"not null;default:1" json:"quantity"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Notes        *string         `gorm:"type:text" json:"notes"`
	Position     int             `gorm:"not null;default:0" json:"position"`

	DesignImages []DesignImage `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE" json:"design_images,omitempty"`

	SubtotalAmount decimal.Decimal `gorm:"-" json:"subtotal"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// DesignImage is a reference photo kept in file storage.
type DesignImage struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderItemID uuid.UUID `gorm:"type:uuid;index;not null" json:"order_item_id"`
	StoragePath string    `gorm:"not null" json:"storage_path"`
	Caption     *string   `json:"caption"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	URL string `gorm:"-" json:"url,omitempty"`
}

func (d *DesignImage) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
