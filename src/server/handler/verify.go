package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// VerifyEmail consumes a verification token from the emailed link. The
// token is single-use: consumption clears it from the user row, so a
// second visit with the same link falls into the invalid branch.
func (h *Handler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		h.render(c, http.StatusOK, "login.tmpl", gin.H{
			"Error": "No verification token provided.",
		})
		return
	}

	user, err := h.Users.Verify(token)
	if err != nil {
		h.fail(c, err)
		return
	}
	if user == nil {
		h.render(c, http.StatusOK, "login.tmpl", gin.H{
			"Error": "Invalid or expired verification token.",
		})
		return
	}

	h.render(c, http.StatusOK, "login.tmpl", gin.H{
		"Success": "Your email has been verified. You can now log in.",
	})
}
