package handler

import (
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/apimgr/saaskit/src/server/middleware"
	models "github.com/apimgr/saaskit/src/server/model"
)

// AdminUsers renders the user management list.
func (h *Handler) AdminUsers(c *gin.Context) {
	h.renderUsers(c, "", "")
}

func (h *Handler) renderUsers(c *gin.Context, success, errMsg string) {
	users, err := h.Users.All()
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin_users.tmpl", gin.H{
		"Users":   users,
		"Success": success,
		"Error":   errMsg,
	})
}

// AdminUserUpdate applies an admin edit to one account.
func (h *Handler) AdminUserUpdate(c *gin.Context) {
	id, err := strconv.ParseInt(c.PostForm("id"), 10, 64)
	if err != nil {
		h.renderUsers(c, "", "Invalid user.")
		return
	}

	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	role := c.PostForm("role")
	isActive := c.PostForm("is_active") == "1"

	if len(username) < 3 {
		h.renderUsers(c, "", "Username must be at least 3 characters long.")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		h.renderUsers(c, "", "Please enter a valid email address.")
		return
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		h.renderUsers(c, "", "Invalid role.")
		return
	}

	user, err := h.Users.GetByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if user == nil {
		h.renderUsers(c, "", "Invalid user.")
		return
	}

	if err := h.Users.AdminUpdate(id, username, email, role, isActive); err != nil {
		h.fail(c, err)
		return
	}

	h.renderUsers(c, "User updated.", "")
}

// AdminUserDelete removes an account. Admins cannot delete themselves.
func (h *Handler) AdminUserDelete(c *gin.Context) {
	id, err := strconv.ParseInt(c.PostForm("id"), 10, 64)
	if err != nil {
		h.renderUsers(c, "", "Invalid user.")
		return
	}

	if middleware.CurrentUser(c).ID == id {
		h.renderUsers(c, "", "You cannot delete your own account.")
		return
	}

	user, err := h.Users.GetByID(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if user == nil {
		h.renderUsers(c, "", "Invalid user.")
		return
	}

	if err := h.Users.Delete(id); err != nil {
		h.fail(c, err)
		return
	}

	h.renderUsers(c, "User deleted.", "")
}
