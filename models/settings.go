package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultBoutiqueName    = "Allure Boutique"
	DefaultOrderPrefix     = "ALR"
	DefaultReminderDays    = 2
	DefaultMeasurementUnit = "inches"
	DefaultPDFFooter       = "Thank you for choosing us!"
)

// BoutiqueSettings is a single-row table. A missing row means the boutique
// has not been configured yet.
type BoutiqueSettings struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BoutiqueName    string    `gorm:"not null" json:"boutique_name"`
	LogoPath        *string   `json:"logo_path"`
	Phone           *string   `json:"phone"`
	Address         *string   `gorm:"type:text" json:"address"`
	MeasurementUnit string    `gorm:"type:varchar(10);not null;default:'inches'" json:"measurement_unit"`
	ReminderDays    int       `gorm:"not null;default:2" json:"reminder_days"`
	PDFFooterText   *string   `gorm:"column:pdf_footer_text;type:text" json:"pdf_footer_text"`
	OrderPrefix     string    `gorm:"type:varchar(10);not null;default:'ALR'" json:"order_prefix"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *BoutiqueSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// DefaultSettings is what an unconfigured boutique runs with.
func DefaultSettings() BoutiqueSettings {
	return BoutiqueSettings{
		BoutiqueName:    DefaultBoutiqueName,
		MeasurementUnit: DefaultMeasurementUnit,
		ReminderDays:    DefaultReminderDays,
		OrderPrefix:     DefaultOrderPrefix,
	}
}

// UnitSuffix is the short unit printed after numeric measurements.
func (s BoutiqueSettings) UnitSuffix() string {
	if s.MeasurementUnit == "cm" {
		return "cm"
	}
	return "in"
}

func (s BoutiqueSettings) FooterText() string {
	if s.PDFFooterText != nil && *s.PDFFooterText != "" {
		return *s.PDFFooterText
	}
	return DefaultPDFFooter
}
