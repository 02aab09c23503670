package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/repository"
	"go.uber.org/zap"
)

// SettingsService handles the shop settings row
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	log          *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, log *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		log:          log,
	}
}

// GetSettings returns the saved settings, or the defaults before the first save
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.ShopSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.log.Error("settings lookup failed", zap.Error(err))
		return nil, err
	}
	if settings == nil {
		settings = entity.DefaultShopSettings()
	}
	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings.
// Nil fields keep their current value.
type UpdateSettingsInput struct {
	StoreName     *string
	Address       *string
	Phone         *string
	GSTIN         *string
	Currency      *string
	Timezone      *string
	ReceiptFooter *string
}

// UpdateSettings updates the shop settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.ShopSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	var errs fieldErrors
	if input.StoreName != nil {
		name := strings.TrimSpace(*input.StoreName)
		errs.required("store_name", name)
		settings.StoreName = name
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			errs.add("timezone", "is not a known time zone")
		}
		settings.Timezone = *input.Timezone
	}
	if input.GSTIN != nil {
		gstin := strings.ToUpper(strings.TrimSpace(*input.GSTIN))
		if gstin != "" && len(gstin) != 15 {
			errs.add("gstin", "must be 15 characters")
		}
		settings.GSTIN = gstin
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	if input.Address != nil {
		settings.Address = *input.Address
	}
	if input.Phone != nil {
		settings.Phone = *input.Phone
	}
	if input.Currency != nil {
		settings.Currency = *input.Currency
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = *input.ReceiptFooter
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		s.log.Error("settings save failed", zap.Error(err))
		return nil, err
	}
	return settings, nil
}
