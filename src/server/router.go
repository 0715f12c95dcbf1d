// Package server assembles the HTTP router: middleware pipeline, page
// routes and the metrics endpoint.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/apimgr/saaskit/src/config"
	"github.com/apimgr/saaskit/src/database"
	"github.com/apimgr/saaskit/src/email"
	"github.com/apimgr/saaskit/src/server/handler"
	"github.com/apimgr/saaskit/src/server/middleware"
	models "github.com/apimgr/saaskit/src/server/model"
	"github.com/apimgr/saaskit/src/server/service"
)

// New builds the router with all routes and middleware wired.
func New(cfg *config.Config, db *database.DB, logger zerolog.Logger) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	users := &models.UserModel{DB: db}
	sessions := &models.SessionModel{DB: db}
	resets := &models.PasswordResetModel{DB: db}
	settings := &models.SettingsModel{DB: db}

	h := &handler.Handler{
		Users:    users,
		Sessions: sessions,
		Resets:   resets,
		Settings: settings,
		Mail:     email.New(cfg.SMTP, cfg.BaseURL),
		Captcha:  service.NewCaptchaVerifier(),
		Logger:   logger,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.Metrics())

	r.LoadHTMLGlob("templates/*.tmpl")

	// Metrics endpoint sits outside the session pipeline.
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	pages := r.Group("/")
	pages.Use(middleware.Session(sessions, users))
	pages.Use(middleware.CSRF(sessions))
	{
		pages.GET("/", h.Home)
		pages.GET("/about", h.About)
		pages.GET("/features", h.Features)
		pages.GET("/privacy-policy", h.PrivacyPolicy)
		pages.GET("/terms-of-service", h.TermsOfService)
		pages.GET("/contact", h.ContactForm)
		pages.POST("/contact", h.ContactSubmit)

		guest := pages.Group("/", middleware.RedirectIfAuthenticated())
		{
			guest.GET("/signup", h.SignupForm)
			guest.POST("/signup", h.Signup)
			guest.GET("/login", h.LoginForm)
			guest.POST("/login", h.Login)
		}

		pages.GET("/logout", h.Logout)
		pages.GET("/verify-email", h.VerifyEmail)
		pages.GET("/forgot-password", h.ForgotPasswordForm)
		pages.POST("/forgot-password", h.ForgotPassword)
		pages.GET("/reset-password", h.ResetPasswordForm)
		pages.POST("/reset-password", h.ResetPassword)

		user := pages.Group("/", middleware.RequireAuth())
		{
			user.GET("/dashboard", h.Dashboard)
			user.POST("/dashboard/change-password", h.ChangePassword)
		}

		admin := pages.Group("/", middleware.RequireAdmin())
		{
			admin.GET("/settings", h.AdminSettingsForm)
			admin.POST("/settings", h.AdminSettingsSave)
			admin.GET("/users", h.AdminUsers)
			admin.POST("/users/update", h.AdminUserUpdate)
			admin.POST("/users/delete", h.AdminUserDelete)
			admin.GET("/reports", h.AdminReports)
		}
	}

	r.NoRoute(middleware.Session(sessions, users), middleware.CSRF(sessions), h.NotFound)

	return r
}
