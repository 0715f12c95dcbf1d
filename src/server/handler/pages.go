package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home renders the marketing landing page.
func (h *Handler) Home(c *gin.Context) {
	h.render(c, http.StatusOK, "home.tmpl", nil)
}

// About renders the about page.
func (h *Handler) About(c *gin.Context) {
	h.render(c, http.StatusOK, "about.tmpl", nil)
}

// Features renders the features page.
func (h *Handler) Features(c *gin.Context) {
	h.render(c, http.StatusOK, "features.tmpl", nil)
}

// PrivacyPolicy renders the privacy policy page.
func (h *Handler) PrivacyPolicy(c *gin.Context) {
	h.render(c, http.StatusOK, "privacy_policy.tmpl", nil)
}

// TermsOfService renders the terms of service page.
func (h *Handler) TermsOfService(c *gin.Context) {
	h.render(c, http.StatusOK, "terms_of_service.tmpl", nil)
}
