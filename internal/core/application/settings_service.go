package application

import (
	"context"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type SettingsService interface {
	GetSettings(ctx context.Context) (*domain.AppSettings, error)
	UpdateSettings(
		ctx context.Context, settings domain.AppSettings,
	) (*domain.AppSettings, error)
}

type settingsService struct {
	repo    domain.SettingsRepository
	network string
}

func NewSettingsService(
	repo domain.SettingsRepository, network string,
) SettingsService {
	return &settingsService{repo, network}
}

// GetSettings returns the stored settings, or the default ones if the user
// never changed them.
func (s *settingsService) GetSettings(
	ctx context.Context,
) (*domain.AppSettings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		defaults := domain.DefaultAppSettings(s.network)
		return &defaults, nil
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(
	ctx context.Context, settings domain.AppSettings,
) (*domain.AppSettings, error) {
	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	if settings.Network == "" {
		settings.Network = s.network
	}

	if err := s.repo.UpdateSettings(
		ctx, func(_ *domain.AppSettings) (*domain.AppSettings, error) {
			return &settings, nil
		},
	); err != nil {
		return nil, err
	}
	return &settings, nil
}

func validateSettings(settings domain.AppSettings) error {
	email := settings.EmailNotifications
	if err := validation.ValidateStruct(&email,
		validation.Field(&email.Email, is.EmailFormat, validation.When(
			email.Accepted, validation.Required,
		)),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&settings,
		validation.Field(&settings.Network, networkRule),
	)
}
