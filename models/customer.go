package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BodyMeasurements is the core measurement profile saved on a customer.
type BodyMeasurements struct {
	Bust           *float64 `json:"bust"`
	UnderBust      *float64 `json:"under_bust"`
	Waist          *float64 `json:"waist"`
	Hip            *float64 `json:"hip"`
	ShoulderWidth  *float64 `json:"shoulder_width"`
	ArmLength      *float64 `json:"arm_length"`
	UpperArm       *float64 `json:"upper_arm"`
	NeckRound      *float64 `json:"neck_round"`
	FrontNeckDepth *float64 `json:"front_neck_depth"`
	BackNeckDepth  *float64 `json:"back_neck_depth"`
	FullHeight     *float64 `json:"full_height"`
}

func (b BodyMeasurements) byKey() map[string]*float64 {
	return map[string]*float64{
		"bust":             b.Bust,
		"under_bust":       b.UnderBust,
		"waist":            b.Waist,
		"hip":              b.Hip,
		"shoulder_width":   b.ShoulderWidth,
		"arm_length":       b.ArmLength,
		"upper_arm":        b.UpperArm,
		"neck_round":       b.NeckRound,
		"front_neck_depth": b.FrontNeckDepth,
		"back_neck_depth":  b.BackNeckDepth,
		"full_height":      b.FullHeight,
	}
}

// AsMeasurements returns the recorded profile values keyed like order item
// measurements. Unset values are left out.
func (b BodyMeasurements) AsMeasurements() Measurements {
	out := Measurements{}
	for key, v := range b.byKey() {
		if v != nil {
			out[key] = NumberValue(*v)
		}
	}
	return out
}

type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string    `gorm:"not null" json:"full_name"`
	Phone    string    `gorm:"not null;index" json:"phone"`
	Email    *string   `json:"email"`
	Address  *string   `json:"address"`
	Notes    *string   `gorm:"type:text" json:"notes"`

	BodyMeasurements `gorm:"embedded"`

	Orders []Order `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
