package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// settingsFormColumns maps form field names to settings columns. Only
// these fields are accepted from the form; anything else is ignored.
var settingsFormColumns = []string{
	"site_name",
	"site_icon",
	"site_description",
	"contact_email",
	"price_gbp",
	"recaptcha_site_key",
	"recaptcha_secret_key",
	"stripe_mode",
	"stripe_test_secret_key",
	"stripe_test_publishable_key",
	"stripe_live_secret_key",
	"stripe_live_publishable_key",
	"facebook_link",
	"x_link",
	"instagram_link",
	"home_meta_title",
	"home_meta_description",
}

// AdminSettingsForm renders the site settings page.
func (h *Handler) AdminSettingsForm(c *gin.Context) {
	h.render(c, http.StatusOK, "admin_settings.tmpl", nil)
}

// AdminSettingsSave writes the submitted settings to the singleton row.
// Last writer wins; there is no concurrency check.
func (h *Handler) AdminSettingsSave(c *gin.Context) {
	fields := make(map[string]any, len(settingsFormColumns))
	for _, col := range settingsFormColumns {
		if _, ok := c.GetPostForm(col); ok {
			fields[col] = c.PostForm(col)
		}
	}

	if err := h.Settings.Update(fields); err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "admin_settings.tmpl", gin.H{
		"Success": "Settings saved.",
	})
}
