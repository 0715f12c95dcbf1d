package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	models "github.com/apimgr/saaskit/src/server/model"
)

// csrfSessionKey is the key of the token inside the session data bag.
// Keeping the token in the bag means it survives the session id
// regeneration at login.
const csrfSessionKey = "csrf_token"

// CSRF issues a per-session token on safe methods and validates it on
// everything else. Form posts carry the token in the csrf_token field;
// a mismatch aborts with 403 before the handler runs. Must run after
// Session.
func CSRF(sessions *models.SessionModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		token := sess.Data[csrfSessionKey]
		if token == "" {
			fresh, err := models.GenerateToken(32)
			if err != nil {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			sess.Data[csrfSessionKey] = fresh
			if err := sessions.Save(sess); err != nil {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			token = fresh
		}
		c.Set(csrfSessionKey, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		submitted := c.PostForm("csrf_token")
		if submitted == "" {
			submitted = c.GetHeader("X-CSRF-Token")
		}
		if submitted == "" || !models.ConstantTimeEquals(submitted, token) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Next()
	}
}

// CSRFToken returns the token for the current session, for embedding in
// form templates.
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfSessionKey)
}
