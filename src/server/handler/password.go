package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ForgotPasswordForm renders the reset request page.
func (h *Handler) ForgotPasswordForm(c *gin.Context) {
	h.render(c, http.StatusOK, "forgot_password.tmpl", nil)
}

// ForgotPassword issues a reset token for a known email address. A
// repeated request replaces the previous token, so only the newest
// emailed link works.
func (h *Handler) ForgotPassword(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))

	user, err := h.Users.GetByEmail(email)
	if err != nil {
		h.fail(c, err)
		return
	}
	if user == nil {
		h.render(c, http.StatusOK, "forgot_password.tmpl", gin.H{
			"Error": "No account found with that email address.",
		})
		return
	}

	reset, err := h.Resets.Request(user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	if h.Mail.IsEnabled() {
		settings, err := h.Settings.Get()
		if err != nil {
			h.fail(c, err)
			return
		}
		if err := h.Mail.SendPasswordReset(user.Email, settings.SiteName, reset.Token); err != nil {
			h.Logger.Error().Err(err).Str("email", user.Email).Msg("failed to send reset email")
		}
	}

	h.render(c, http.StatusOK, "forgot_password.tmpl", gin.H{
		"Success": "A password reset link has been sent to your email.",
	})
}

// ResetPasswordForm renders the new-password page for an emailed token.
// The token is only checked on submit; rendering the form does not
// consume or validate it.
func (h *Handler) ResetPasswordForm(c *gin.Context) {
	h.render(c, http.StatusOK, "reset_password.tmpl", gin.H{
		"Token": c.Query("token"),
	})
}

// ResetPassword consumes a reset token and sets the new password. An
// invalid or expired token leaves the password untouched.
func (h *Handler) ResetPassword(c *gin.Context) {
	token := c.PostForm("token")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	if len(password) < 6 {
		h.render(c, http.StatusOK, "reset_password.tmpl", gin.H{
			"Token": token,
			"Error": "Password must be at least 6 characters long.",
		})
		return
	}
	if password != confirm {
		h.render(c, http.StatusOK, "reset_password.tmpl", gin.H{
			"Token": token,
			"Error": "Passwords do not match.",
		})
		return
	}

	ok, err := h.Resets.Consume(token, password, h.Users)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !ok {
		h.render(c, http.StatusOK, "reset_password.tmpl", gin.H{
			"Token": token,
			"Error": "Invalid or expired reset token.",
		})
		return
	}

	h.render(c, http.StatusOK, "login.tmpl", gin.H{
		"Success": "Your password has been reset. You can now log in.",
	})
}
