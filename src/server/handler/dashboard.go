package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apimgr/saaskit/src/server/middleware"
	models "github.com/apimgr/saaskit/src/server/model"
)

// Dashboard renders the signed-in user's home page.
func (h *Handler) Dashboard(c *gin.Context) {
	h.render(c, http.StatusOK, "dashboard.tmpl", nil)
}

// ChangePassword handles the dashboard change-password card: the
// current password must verify and the new one must be at least 8
// characters and confirmed.
func (h *Handler) ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)

	current := c.PostForm("current_password")
	password := c.PostForm("new_password")
	confirm := c.PostForm("confirm_password")

	ok, err := models.VerifyPassword(current, user.PasswordHash)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !ok {
		h.render(c, http.StatusOK, "dashboard.tmpl", gin.H{
			"Error": "Current password is incorrect.",
		})
		return
	}
	if len(password) < 8 {
		h.render(c, http.StatusOK, "dashboard.tmpl", gin.H{
			"Error": "New password must be at least 8 characters long.",
		})
		return
	}
	if password != confirm {
		h.render(c, http.StatusOK, "dashboard.tmpl", gin.H{
			"Error": "Passwords do not match.",
		})
		return
	}

	if err := h.Users.UpdatePassword(user.ID, password); err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "dashboard.tmpl", gin.H{
		"Success": "Your password has been changed.",
	})
}
