// Package middleware provides the request pipeline: session bootstrap,
// auth guards, CSRF validation, request ids, access logging and metrics.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	models "github.com/apimgr/saaskit/src/server/model"
)

// Context keys set by the session middleware.
const (
	SessionKey = "session"
	UserKey    = "current_user"
)

// SessionCookie is the name of the session id cookie.
const SessionCookie = "session_id"

// Session loads the server-side session named by the request cookie and
// puts it in the gin context, creating a fresh anonymous session when
// the cookie is missing or stale. When the session is bound to a user,
// the user row is loaded too.
func Session(sessions *models.SessionModel, users *models.UserModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess *models.Session

		if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
			sess, _ = sessions.GetByID(id)
		}

		if sess == nil {
			fresh, err := sessions.Create()
			if err != nil {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			sess = fresh
			setSessionCookie(c, sess.ID)
		}

		c.Set(SessionKey, sess)

		if sess.UserID != 0 {
			user, err := users.GetByID(sess.UserID)
			if err == nil && user != nil {
				c.Set(UserKey, user)
			}
		}

		c.Next()
	}
}

// CurrentSession returns the session placed in the context by Session.
func CurrentSession(c *gin.Context) *models.Session {
	if v, ok := c.Get(SessionKey); ok {
		if s, ok := v.(*models.Session); ok {
			return s
		}
	}
	return nil
}

// CurrentUser returns the authenticated user, or nil for anonymous
// requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(UserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, int(models.SessionTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
}

// BindSessionCookie points the browser at a session id, used after
// login regenerates the session.
func BindSessionCookie(c *gin.Context, id string) {
	setSessionCookie(c, id)
}

// ClearSessionCookie expires the session cookie, used at logout.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
}
