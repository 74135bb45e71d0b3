package application_test

import (
	"testing"

	"github.com/JerryMichels/bitpay-app/internal/core/application"
	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestSettingsService(t *testing.T) {
	repoManager := newTestRepoManager(t)
	svc := application.NewSettingsService(
		repoManager.SettingsRepository(), domain.NetworkTestnet,
	)

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultAppSettings(domain.NetworkTestnet), *settings)

	t.Run("invalid", func(t *testing.T) {
		tests := []struct {
			name     string
			settings domain.AppSettings
		}{
			{
				name:     "invalid network",
				settings: domain.AppSettings{Network: "signet"},
			},
			{
				name: "invalid email",
				settings: domain.AppSettings{
					EmailNotifications: domain.EmailNotifications{
						Accepted: true, Email: "not an email",
					},
				},
			},
			{
				name: "accepted without email",
				settings: domain.AppSettings{
					EmailNotifications: domain.EmailNotifications{Accepted: true},
				},
			},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				res, err := svc.UpdateSettings(ctx, tt.settings)
				require.Error(t, err)
				require.Nil(t, res)
			})
		}
	})

	t.Run("valid", func(t *testing.T) {
		res, err := svc.UpdateSettings(ctx, domain.AppSettings{
			NotificationsAccepted: true,
			DefaultLanguage:       "es",
			EmailNotifications: domain.EmailNotifications{
				Accepted: true, Email: "user@example.com",
			},
		})
		require.NoError(t, err)
		require.Equal(t, domain.NetworkTestnet, res.Network)

		settings, err := svc.GetSettings(ctx)
		require.NoError(t, err)
		require.Equal(t, *res, *settings)
		require.True(t, settings.WantsEmailNotifications())
		require.Equal(t, "es", settings.DefaultLanguage)
	})
}
