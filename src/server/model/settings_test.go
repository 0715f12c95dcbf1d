package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsDefaultsOnFreshDatabase(t *testing.T) {
	settings := &SettingsModel{DB: newTestDB(t)}

	s, err := settings.Get()
	require.NoError(t, err)

	assert.Equal(t, "Your Site Name", s.SiteName)
	assert.Equal(t, "fas fa-globe", s.SiteIcon)
	assert.Equal(t, "no-reply@example.com", s.ContactEmail)
	assert.Equal(t, "test", s.StripeMode)
	assert.Empty(t, s.RecaptchaSiteKey)
}

func TestSettingsUpdatePersists(t *testing.T) {
	settings := &SettingsModel{DB: newTestDB(t)}

	err := settings.Update(map[string]any{
		"site_name":     "Acme Widgets",
		"contact_email": "hello@acme.test",
		"facebook_link": "https://facebook.com/acme",
	})
	require.NoError(t, err)

	s, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "Acme Widgets", s.SiteName)
	assert.Equal(t, "hello@acme.test", s.ContactEmail)
	assert.Equal(t, "https://facebook.com/acme", s.FacebookLink)

	// Untouched columns keep their defaults.
	assert.Equal(t, "fas fa-globe", s.SiteIcon)
}

func TestSettingsEmptyColumnFallsBackToDefault(t *testing.T) {
	settings := &SettingsModel{DB: newTestDB(t)}

	require.NoError(t, settings.Update(map[string]any{"site_name": ""}))

	s, err := settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "Your Site Name", s.SiteName)
}

func TestSettingsUpdateRejectsUnknownColumn(t *testing.T) {
	settings := &SettingsModel{DB: newTestDB(t)}

	err := settings.Update(map[string]any{"no_such_column": "x"})
	require.Error(t, err)

	require.NoError(t, settings.Update(nil))
}

func TestStripeKeySelection(t *testing.T) {
	s := &Settings{
		StripeMode:               "test",
		StripeTestSecretKey:      "sk_test_1",
		StripeTestPublishableKey: "pk_test_1",
		StripeLiveSecretKey:      "sk_live_1",
		StripeLivePublishableKey: "pk_live_1",
	}

	assert.Equal(t, "sk_test_1", s.StripeSecretKey())
	assert.Equal(t, "pk_test_1", s.StripePublishableKey())

	s.StripeMode = "live"
	assert.Equal(t, "sk_live_1", s.StripeSecretKey())
	assert.Equal(t, "pk_live_1", s.StripePublishableKey())
}
