package service

import (
	"context"
	"fmt"

	"clinic-pos/internal/domain"
	"clinic-pos/internal/repository"
)

// SettingsService manages the single clinic settings record. The tax rate and
// consultation charge it holds are the defaults applied to new sales.
type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, settings *domain.Settings) (*domain.Settings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new instance of SettingsService
func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

// Get retrieves the clinic settings
func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// Update validates and persists the clinic settings
func (s *settingsService) Update(ctx context.Context, settings *domain.Settings) (*domain.Settings, error) {
	if settings.TaxRate < 0 {
		return nil, fmt.Errorf("tax rate must not be negative")
	}
	if settings.ConsultationCharge < 0 {
		return nil, fmt.Errorf("consultation charge must not be negative")
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	return settings, nil
}
