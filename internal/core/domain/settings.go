package domain

// EmailNotifications holds the user opt-in for email notifications.
type EmailNotifications struct {
	Accepted bool   `json:"accepted"`
	Email    string `json:"email,omitempty"`
}

// AppSettings are the process wide settings affecting wallet creation.
type AppSettings struct {
	Network               string             `json:"network"`
	NotificationsAccepted bool               `json:"notifications_accepted"`
	EmailNotifications    EmailNotifications `json:"email_notifications"`
	DefaultLanguage       string             `json:"default_language"`
	ExternalUserID        string             `json:"external_user_id,omitempty"`
}

// DefaultAppSettings returns the settings used until the user changes them.
func DefaultAppSettings(network string) AppSettings {
	if network == "" {
		network = NetworkMainnet
	}
	return AppSettings{
		Network:         network,
		DefaultLanguage: "en",
	}
}

// WantsEmailNotifications returns whether wallets must be subscribed to email
// notifications.
func (s AppSettings) WantsEmailNotifications() bool {
	return s.EmailNotifications.Accepted && s.EmailNotifications.Email != ""
}
