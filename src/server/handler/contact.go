package handler

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContactForm renders the contact page.
func (h *Handler) ContactForm(c *gin.Context) {
	h.render(c, http.StatusOK, "contact.tmpl", gin.H{
		"Fields":      emptyContactFields(),
		"FieldErrors": map[string]string{},
	})
}

func emptyContactFields() gin.H {
	return gin.H{"name": "", "email": "", "subject": "", "message": ""}
}

// ContactSubmit validates the contact form and relays the message to
// the site contact address. Validation errors are surfaced per field so
// the form can highlight the offending input.
func (h *Handler) ContactSubmit(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.TrimSpace(c.PostForm("email"))
	subject := strings.TrimSpace(c.PostForm("subject"))
	message := strings.TrimSpace(c.PostForm("message"))

	fields := gin.H{"name": name, "email": email, "subject": subject, "message": message}
	fieldErrors := map[string]string{}

	if name == "" {
		fieldErrors["name"] = "Please enter your name."
	}
	if email == "" {
		fieldErrors["email"] = "Please enter your email address."
	} else if _, err := mail.ParseAddress(email); err != nil {
		fieldErrors["email"] = "Please enter a valid email address."
	}
	if subject == "" {
		fieldErrors["subject"] = "Please enter a subject."
	}
	if message == "" {
		fieldErrors["message"] = "Please enter a message."
	}

	settings, err := h.Settings.Get()
	if err != nil {
		h.fail(c, err)
		return
	}

	if len(fieldErrors) == 0 && settings.RecaptchaSiteKey != "" {
		ok, err := h.Captcha.Verify(settings.RecaptchaSecretKey, c.PostForm("g-recaptcha-response"), c.ClientIP())
		if err != nil {
			h.Logger.Error().Err(err).Msg("captcha verification failed")
			fieldErrors["captcha"] = "Captcha verification failed. Please try again."
		} else if !ok {
			fieldErrors["captcha"] = "Please complete the captcha."
		}
	}

	if len(fieldErrors) > 0 {
		h.render(c, http.StatusOK, "contact.tmpl", gin.H{
			"Fields":      fields,
			"FieldErrors": fieldErrors,
			"Error":       "Please correct the errors below.",
		})
		return
	}

	if h.Mail.IsEnabled() {
		if err := h.Mail.SendContactMessage(settings.ContactEmail, name, email, subject+"\n\n"+message); err != nil {
			h.Logger.Error().Err(err).Msg("failed to relay contact message")
			h.render(c, http.StatusOK, "contact.tmpl", gin.H{
				"Fields":      fields,
				"FieldErrors": fieldErrors,
				"Error":       "Your message could not be sent. Please try again later.",
			})
			return
		}
	}

	h.render(c, http.StatusOK, "contact.tmpl", gin.H{
		"Fields":      emptyContactFields(),
		"FieldErrors": map[string]string{},
		"Success":     "Thank you for your message. We will get back to you soon.",
	})
}
