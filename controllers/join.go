package controllers

import (
	"log/slog"
	"net/http"

	"file-chat/middleware"
	"file-chat/models"
	"file-chat/storage"

	"github.com/gin-gonic/gin"
)

// Join appends the join notice and then records the username in the
// session. A failed append leaves the session untouched.
func (ctl *Chat) Join(c *gin.Context) {
	username, err := models.CleanField(c.PostForm("username"), ctl.opts.MaxUsernameLength)
	if err != nil {
		redirectWithError(c, models.ErrorInvalidUsername)
		return
	}

	token := middleware.EnsureToken(c, ctl.opts.CookieSecure)

	if err := ctl.appendLine(storage.JoinNotice(username)); err != nil {
		ctl.log.Error("error saving join message", slog.String("username", username), slog.Any("error", err))
		redirectWithError(c, models.ErrorJoinFailed)
		return
	}

	if err := ctl.sessions.Set(c.Request.Context(), token, username); err != nil {
		ctl.log.Error("error storing session", slog.String("username", username), slog.Any("error", err))
		redirectWithError(c, models.ErrorJoinFailed)
		return
	}

	ctl.log.Debug("user joined the chat", slog.String("username", username))
	c.Redirect(http.StatusFound, "/")
}

// Leave appends the leave notice and clears the session. Without a joined
// username it is a no-op.
func (ctl *Chat) Leave(c *gin.Context) {
	username := middleware.Username(c)
	if username == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := ctl.appendLine(storage.LeaveNotice(username)); err != nil {
		ctl.log.Error("error saving leave message", slog.String("username", username), slog.Any("error", err))
		redirectWithError(c, models.ErrorLeaveFailed)
		return
	}

	if err := ctl.sessions.Clear(c.Request.Context(), middleware.Token(c)); err != nil {
		ctl.log.Error("error clearing session", slog.String("username", username), slog.Any("error", err))
		redirectWithError(c, models.ErrorLeaveFailed)
		return
	}

	ctl.log.Debug("user left the chat", slog.String("username", username))
	c.Redirect(http.StatusFound, "/")
}

func redirectWithError(c *gin.Context, code string) {
	c.Redirect(http.StatusFound, "/?error="+code)
}
