package middleware

import (
	"log/slog"
	"net/http"

	"file-chat/helpers"
	"file-chat/models"
	"file-chat/storage"

	"github.com/gin-gonic/gin"
)

// SessionMiddleware resolves the session cookie into a token and, when the
// token has joined, a username. Store failures are logged and the request
// continues as not joined.
func SessionMiddleware(store storage.SessionStore, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(models.SessionCookie)
		if err != nil || !helpers.ValidSessionToken(token) {
			c.Next()
			return
		}
		c.Set(models.ContextToken, token)

		username, ok, err := store.Get(c.Request.Context(), token)
		if err != nil {
			log.Error("session lookup failed", slog.Any("error", err))
		} else if ok {
			c.Set(models.ContextUser, username)
		}
		c.Next()
	}
}

// Username returns the joined username of the request, or "".
func Username(c *gin.Context) string {
	return c.GetString(models.ContextUser)
}

func Token(c *gin.Context) string {
	return c.GetString(models.ContextToken)
}

// EnsureToken returns the request's session token, issuing a new cookie when
// there is none. The cookie has no Max-Age so it ends with the browser
// session; the store enforces server-side expiry.
func EnsureToken(c *gin.Context, secure bool) string {
	if token := Token(c); token != "" {
		return token
	}
	token := helpers.NewSessionToken()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(models.SessionCookie, token, 0, "/", "", secure, true)
	c.Set(models.ContextToken, token)
	return token
}
