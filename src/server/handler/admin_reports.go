package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	models "github.com/apimgr/saaskit/src/server/model"
)

// AdminReports renders the summary counts page.
func (h *Handler) AdminReports(c *gin.Context) {
	total, err := h.Users.Count()
	if err != nil {
		h.fail(c, err)
		return
	}

	users, err := h.Users.All()
	if err != nil {
		h.fail(c, err)
		return
	}
	active, admins := 0, 0
	for _, u := range users {
		if u.IsActive {
			active++
		}
		if u.Role == models.RoleAdmin {
			admins++
		}
	}

	pendingResets, err := h.Resets.DB.Count("password_resets")
	if err != nil {
		h.fail(c, err)
		return
	}

	h.render(c, http.StatusOK, "admin_reports.tmpl", gin.H{
		"TotalUsers":    total,
		"ActiveUsers":   active,
		"AdminUsers":    admins,
		"PendingResets": pendingResets,
	})
}
