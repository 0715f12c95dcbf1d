package handler

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/apimgr/saaskit/src/server/metrics"
	"github.com/apimgr/saaskit/src/server/middleware"
	models "github.com/apimgr/saaskit/src/server/model"
)

// SignupForm renders the registration page.
func (h *Handler) SignupForm(c *gin.Context) {
	h.render(c, http.StatusOK, "signup.tmpl", gin.H{
		"Fields": gin.H{"email": "", "username": ""},
	})
}

// validateSignup runs the signup checks in order and returns the first
// failure message, or "".
func (h *Handler) validateSignup(email, username, password, confirm string) (string, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return "Please enter a valid email address.", nil
	}
	if len(username) < 3 {
		return "Username must be at least 3 characters long.", nil
	}
	if len(password) < 6 {
		return "Password must be at least 6 characters long.", nil
	}
	if password != confirm {
		return "Passwords do not match.", nil
	}

	existing, err := h.Users.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "An account with that email address already exists.", nil
	}

	existing, err = h.Users.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "That username is already taken.", nil
	}

	return "", nil
}

// Signup registers a new account. The first account ever created is
// activated and signed in on the spot; everyone else gets a
// verification email and stays inactive until it is used.
func (h *Handler) Signup(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	fields := gin.H{"email": email, "username": username}

	msg, err := h.validateSignup(email, username, password, confirm)
	if err != nil {
		h.fail(c, err)
		return
	}
	if msg != "" {
		h.render(c, http.StatusOK, "signup.tmpl", gin.H{"Fields": fields, "Error": msg})
		return
	}

	user, err := h.Users.Create(email, username, password)
	if err != nil {
		h.fail(c, err)
		return
	}
	metrics.Signups.Inc()

	if user.IsActive {
		// First account: sign in immediately.
		if err := h.signIn(c, user); err != nil {
			h.fail(c, err)
			return
		}
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	if h.Mail.IsEnabled() {
		settings, err := h.Settings.Get()
		if err != nil {
			h.fail(c, err)
			return
		}
		if err := h.Mail.SendVerification(user.Email, settings.SiteName, user.VerificationToken); err != nil {
			h.Logger.Error().Err(err).Str("email", user.Email).Msg("failed to send verification email")
		}
	}

	h.render(c, http.StatusOK, "login.tmpl", gin.H{
		"Success": "Account created. Please check your email to verify your account.",
	})
}

// LoginForm renders the login page.
func (h *Handler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.tmpl", nil)
}

// Login authenticates by email and password. Inactive accounts are told
// so; every other failure gets the same generic message.
func (h *Handler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	user, err := h.Users.GetByEmail(email)
	if err != nil {
		h.fail(c, err)
		return
	}

	if user != nil && !user.IsActive {
		metrics.AuthAttempts.WithLabelValues("inactive").Inc()
		h.render(c, http.StatusOK, "login.tmpl", gin.H{
			"Error": "Your account is not active. Please verify your email or contact support.",
		})
		return
	}

	ok := false
	if user != nil {
		ok, err = models.VerifyPassword(password, user.PasswordHash)
		if err != nil {
			h.fail(c, err)
			return
		}
	}
	if !ok {
		metrics.AuthAttempts.WithLabelValues("bad_credentials").Inc()
		h.render(c, http.StatusOK, "login.tmpl", gin.H{
			"Error": "Login failed. Please check your credentials.",
		})
		return
	}

	if err := h.signIn(c, user); err != nil {
		h.fail(c, err)
		return
	}
	metrics.AuthAttempts.WithLabelValues("success").Inc()
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// signIn binds the session to a user and regenerates the session id so
// an id issued before authentication never names a signed-in session.
// The data bag, CSRF token included, carries over.
func (h *Handler) signIn(c *gin.Context, user *models.User) error {
	sess := middleware.CurrentSession(c)
	sess.UserID = user.ID
	sess.Data["email"] = user.Email
	sess.Data["role"] = user.Role

	fresh, err := h.Sessions.Regenerate(sess)
	if err != nil {
		return err
	}
	c.Set(middleware.SessionKey, fresh)
	c.Set(middleware.UserKey, user)
	middleware.BindSessionCookie(c, fresh.ID)
	return nil
}

// Logout deletes the server-side session and expires the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if sess := middleware.CurrentSession(c); sess != nil {
		if err := h.Sessions.Delete(sess.ID); err != nil {
			h.Logger.Error().Err(err).Msg("failed to delete session")
		}
	}
	middleware.ClearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}
