package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"file-chat/middleware"
	"file-chat/models"
	"file-chat/storage"

	"github.com/gin-gonic/gin"
)

func (ctl *Chat) SendMessage(c *gin.Context) {
	username := middleware.Username(c)
	if username == "" {
		c.JSON(http.StatusUnauthorized, models.StatusResponse{Status: models.StatusError, Message: "You must join the chat first"})
		return
	}

	message, err := models.CleanField(c.PostForm("message"), ctl.opts.MaxMessageLength)
	switch {
	case errors.Is(err, models.ErrTooLong):
		c.JSON(http.StatusBadRequest, models.StatusResponse{Status: models.StatusError, Message: "Message is too long"})
		return
	case errors.Is(err, models.ErrMultiline):
		c.JSON(http.StatusBadRequest, models.StatusResponse{Status: models.StatusError, Message: "Message must be a single line"})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, models.StatusResponse{Status: models.StatusError, Message: "Message cannot be empty"})
		return
	}

	if err := ctl.appendLine(storage.ChatMessage(username, message)); err != nil {
		ctl.log.Error("error saving message", slog.String("username", username), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, models.StatusResponse{Status: models.StatusError, Message: "Failed to save message"})
		return
	}

	ctl.log.Debug("message saved", slog.String("username", username))
	c.JSON(http.StatusOK, models.StatusResponse{Status: models.StatusSuccess})
}

func (ctl *Chat) Messages(c *gin.Context) {
	lines, err := ctl.chatLog.Lines()
	if err != nil {
		ctl.log.Error("error reading messages", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, models.StatusResponse{Status: models.StatusError, Message: "Failed to retrieve messages"})
		return
	}
	c.JSON(http.StatusOK, models.MessagesResponse{Messages: lines})
}
