package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"allure-backend/models"

	"github.com/romana/rlog"
)

var prefixPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)

type SettingsInput struct {
	BoutiqueName    string  `json:"boutique_name"`
	LogoPath        *string `json:"logo_path"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	MeasurementUnit string  `json:"measurement_unit"`
	ReminderDays    int     `json:"reminder_days"`
	PDFFooterText   *string `json:"pdf_footer_text"`
	OrderPrefix     string  `json:"order_prefix"`
}

// SettingsService owns the single boutique settings row. Callers load it
// once per request and pass the value on.
type SettingsService struct {
	repo  SettingsRepository
	cache SettingsCache
}

// NewSettingsService accepts a nil cache.
func NewSettingsService(repo SettingsRepository, cache SettingsCache) *SettingsService {
	return &SettingsService{repo: repo, cache: cache}
}

// Get returns the stored settings, or the defaults with configured=false.
func (s *SettingsService) Get(ctx context.Context) (models.BoutiqueSettings, bool, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err != nil {
			rlog.Warnf("Settings cache read failed: %v", err)
		} else if cached != nil {
			return *cached, true, nil
		}
	}

	stored, err := s.repo.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		return models.DefaultSettings(), false, nil
	}
	if err != nil {
		return models.BoutiqueSettings{}, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stored); err != nil {
			rlog.Warnf("Settings cache write failed: %v", err)
		}
	}
	return *stored, true, nil
}

// Save validates and stores the settings. The last writer wins.
func (s *SettingsService) Save(ctx context.Context, in SettingsInput) (models.BoutiqueSettings, error) {
	settings := models.DefaultSettings()

	settings.BoutiqueName = strings.TrimSpace(in.BoutiqueName)
	if settings.BoutiqueName == "" {
		return settings, invalid("boutique_name", "boutique name is required")
	}

	switch unit := strings.TrimSpace(in.MeasurementUnit); unit {
	case "":
	case "inches", "cm":
		settings.MeasurementUnit = unit
	default:
		return settings, invalid("measurement_unit", "must be inches or cm")
	}

	switch {
	case in.ReminderDays == 0:
	case in.ReminderDays < 1 || in.ReminderDays > 30:
		return settings, invalid("reminder_days", "must be between 1 and 30")
	default:
		settings.ReminderDays = in.ReminderDays
	}

	if prefix := strings.TrimSpace(in.OrderPrefix); prefix != "" {
		if !prefixPattern.MatchString(prefix) {
			return settings, invalid("order_prefix", "use 1 to 10 letters or digits")
		}
		settings.OrderPrefix = strings.ToUpper(prefix)
	}

	settings.LogoPath = trimmedPtr(in.LogoPath)
	settings.Phone = trimmedPtr(in.Phone)
	settings.Address = trimmedPtr(in.Address)
	settings.PDFFooterText = trimmedPtr(in.PDFFooterText)

	if err := s.repo.Save(ctx, &settings); err != nil {
		return settings, err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			rlog.Warnf("Settings cache invalidation failed: %v", err)
		}
	}
	rlog.Infof("Boutique settings saved (prefix %s)", settings.OrderPrefix)
	return settings, nil
}
