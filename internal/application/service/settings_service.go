package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/config"
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/sangkips/farmstore-admin/internal/domain/enum"
	"github.com/sangkips/farmstore-admin/internal/domain/repository"
	"github.com/sangkips/farmstore-admin/pkg/apperror"
)

// SettingsService handles report preferences per user
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	cfg          config.ReportConfig
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, cfg config.ReportConfig) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		cfg:          cfg,
	}
}

// GetSettings retrieves user settings, creating defaults if not exists
func (s *SettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		settings = &entity.UserSettings{
			UserID:              userID,
			Timezone:            s.cfg.Timezone,
			DefaultReportPeriod: s.cfg.DefaultPeriod,
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings.
// Empty fields are left unchanged.
type UpdateSettingsInput struct {
	UserID              uuid.UUID
	Timezone            string
	DefaultReportPeriod string
}

// UpdateSettings validates and stores user settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.UserSettings, error) {
	var fieldErrors []apperror.FieldError
	if input.Timezone != "" {
		if _, err := time.LoadLocation(input.Timezone); err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "timezone", Message: "unknown timezone"})
		}
	}
	period := input.DefaultReportPeriod
	if period != "" {
		kind, err := enum.ParsePeriodKind(period)
		if err != nil || kind == enum.PeriodCustom {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "default_report_period", Message: "must be daily, weekly, monthly or yearly"})
		} else {
			period = kind.String()
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	settings, err := s.GetSettings(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Timezone != "" {
		settings.Timezone = input.Timezone
	}
	if period != "" {
		settings.DefaultReportPeriod = period
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
