package models

import (
	"github.com/apimgr/saaskit/src/database"
)

// Settings is the single row of site-wide configuration. The row with
// id=1 is seeded at bootstrap and only ever updated in place.
type Settings struct {
	SiteName        string `json:"site_name"`
	SiteIcon        string `json:"site_icon"`
	SiteDescription string `json:"site_description"`
	ContactEmail    string `json:"contact_email"`
	PriceGBP        string `json:"price_gbp"`

	RecaptchaSiteKey   string `json:"recaptcha_site_key"`
	RecaptchaSecretKey string `json:"recaptcha_secret_key"`

	StripeMode               string `json:"stripe_mode"`
	StripeTestSecretKey      string `json:"stripe_test_secret_key"`
	StripeTestPublishableKey string `json:"stripe_test_publishable_key"`
	StripeLiveSecretKey      string `json:"stripe_live_secret_key"`
	StripeLivePublishableKey string `json:"stripe_live_publishable_key"`

	FacebookLink  string `json:"facebook_link"`
	XLink         string `json:"x_link"`
	InstagramLink string `json:"instagram_link"`

	HomeMetaTitle       string `json:"home_meta_title"`
	HomeMetaDescription string `json:"home_meta_description"`
}

// SettingsModel handles the settings singleton.
type SettingsModel struct {
	DB *database.DB
}

// settingsID is the fixed id of the singleton row.
const settingsID = 1

func settingValue(row database.Row, key string) string {
	if row != nil {
		if v := asString(row, key); v != "" {
			return v
		}
	}
	return database.DefaultSettings[key]
}

// Get loads the settings row, filling any empty or missing column with
// its built-in default so callers always see usable values.
func (m *SettingsModel) Get() (*Settings, error) {
	row, err := m.DB.SelectOneByField("settings", "id", settingsID)
	if err != nil {
		return nil, err
	}

	return &Settings{
		SiteName:        settingValue(row, "site_name"),
		SiteIcon:        settingValue(row, "site_icon"),
		SiteDescription: settingValue(row, "site_description"),
		ContactEmail:    settingValue(row, "contact_email"),
		PriceGBP:        settingValue(row, "price_gbp"),

		RecaptchaSiteKey:   settingValue(row, "recaptcha_site_key"),
		RecaptchaSecretKey: settingValue(row, "recaptcha_secret_key"),

		StripeMode:               settingValue(row, "stripe_mode"),
		StripeTestSecretKey:      settingValue(row, "stripe_test_secret_key"),
		StripeTestPublishableKey: settingValue(row, "stripe_test_publishable_key"),
		StripeLiveSecretKey:      settingValue(row, "stripe_live_secret_key"),
		StripeLivePublishableKey: settingValue(row, "stripe_live_publishable_key"),

		FacebookLink:  settingValue(row, "facebook_link"),
		XLink:         settingValue(row, "x_link"),
		InstagramLink: settingValue(row, "instagram_link"),

		HomeMetaTitle:       settingValue(row, "home_meta_title"),
		HomeMetaDescription: settingValue(row, "home_meta_description"),
	}, nil
}

// Update writes the given columns to the singleton row. Unknown columns
// are rejected by the access layer.
func (m *SettingsModel) Update(fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return m.DB.Update("settings", "id", settingsID, fields)
}

// StripeSecretKey returns the secret key matching the configured mode.
func (s *Settings) StripeSecretKey() string {
	if s.StripeMode == "live" {
		return s.StripeLiveSecretKey
	}
	return s.StripeTestSecretKey
}

// StripePublishableKey returns the publishable key matching the
// configured mode.
func (s *Settings) StripePublishableKey() string {
	if s.StripeMode == "live" {
		return s.StripeLivePublishableKey
	}
	return s.StripeTestPublishableKey
}
