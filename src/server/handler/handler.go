// Package handler contains the page controllers. Every route gets one
// handler; GETs render and POSTs validate then act, with CSRF checked
// by middleware before any POST handler runs.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/apimgr/saaskit/src/email"
	"github.com/apimgr/saaskit/src/server/middleware"
	models "github.com/apimgr/saaskit/src/server/model"
	"github.com/apimgr/saaskit/src/server/service"
)

// Handler bundles the dependencies shared by all page controllers.
type Handler struct {
	Users    *models.UserModel
	Sessions *models.SessionModel
	Resets   *models.PasswordResetModel
	Settings *models.SettingsModel
	Mail     *email.Service
	Captcha  *service.CaptchaVerifier
	Logger   zerolog.Logger
}

// pageMeta is the per-route title/description pair rendered into the
// document head.
type pageMeta struct {
	Title       string
	Description string
}

// metaFor derives page metadata from the route and the configured site
// name.
func metaFor(path string, s *models.Settings) pageMeta {
	switch path {
	case "/":
		title := s.HomeMetaTitle
		if title == "" {
			title = s.SiteName
		}
		desc := s.HomeMetaDescription
		if desc == "" {
			desc = s.SiteDescription
		}
		return pageMeta{Title: title, Description: desc}
	case "/about":
		return pageMeta{Title: "About | " + s.SiteName, Description: s.SiteDescription}
	case "/features":
		return pageMeta{Title: "Features | " + s.SiteName, Description: s.SiteDescription}
	case "/contact":
		return pageMeta{Title: "Contact | " + s.SiteName, Description: s.SiteDescription}
	case "/privacy-policy":
		return pageMeta{Title: "Privacy Policy | " + s.SiteName, Description: s.SiteDescription}
	case "/terms-of-service":
		return pageMeta{Title: "Terms of Service | " + s.SiteName, Description: s.SiteDescription}
	case "/signup":
		return pageMeta{Title: "Sign Up | " + s.SiteName, Description: s.SiteDescription}
	case "/login":
		return pageMeta{Title: "Log In | " + s.SiteName, Description: s.SiteDescription}
	case "/forgot-password":
		return pageMeta{Title: "Forgot Password | " + s.SiteName, Description: s.SiteDescription}
	case "/reset-password":
		return pageMeta{Title: "Reset Password | " + s.SiteName, Description: s.SiteDescription}
	case "/dashboard":
		return pageMeta{Title: "Dashboard | " + s.SiteName, Description: s.SiteDescription}
	case "/settings":
		return pageMeta{Title: "Site Settings | " + s.SiteName, Description: s.SiteDescription}
	case "/users":
		return pageMeta{Title: "Users | " + s.SiteName, Description: s.SiteDescription}
	case "/reports":
		return pageMeta{Title: "Reports | " + s.SiteName, Description: s.SiteDescription}
	default:
		return pageMeta{Title: s.SiteName, Description: s.SiteDescription}
	}
}

// render writes a page template with the standard data contract: site
// settings, current user, CSRF token, page metadata and at most one
// success and one error alert.
func (h *Handler) render(c *gin.Context, status int, template string, data gin.H) {
	settings, err := h.Settings.Get()
	if err != nil {
		h.fail(c, err)
		return
	}

	if data == nil {
		data = gin.H{}
	}
	data["Settings"] = settings
	data["User"] = middleware.CurrentUser(c)
	data["CSRFToken"] = middleware.CSRFToken(c)
	data["Meta"] = metaFor(c.Request.URL.Path, settings)
	if _, ok := data["Success"]; !ok {
		data["Success"] = ""
	}
	if _, ok := data["Error"]; !ok {
		data["Error"] = ""
	}

	c.HTML(status, template, data)
}

// fail logs an unexpected error and renders the generic failure page.
// Data-access errors end up here; nothing retries.
func (h *Handler) fail(c *gin.Context, err error) {
	h.Logger.Error().
		Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("path", c.Request.URL.Path).
		Msg("request failed")

	c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{
		"Meta":      pageMeta{Title: "Something went wrong"},
		"Error":     "Something went wrong. Please try again later.",
		"Success":   "",
		"User":      middleware.CurrentUser(c),
		"CSRFToken": middleware.CSRFToken(c),
	})
	c.Abort()
}

// NotFound renders the 404 page for unmatched routes.
func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "404.tmpl", nil)
}
