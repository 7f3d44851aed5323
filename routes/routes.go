package routes

import (
	"log/slog"

	"file-chat/controllers"
	"file-chat/handlers"
	"file-chat/middleware"
	"file-chat/storage"

	"github.com/gin-gonic/gin"
)

func ChatRouter(r *gin.Engine, chat *controllers.Chat, sessions storage.SessionStore, log *slog.Logger) {
	r.GET("/healthz", handlers.Health)

	r.Use(middleware.SessionMiddleware(sessions, log))
	r.GET("/", handlers.Home)
	r.POST("/join", chat.Join)
	r.POST("/leave", chat.Leave)
	r.POST("/send", chat.SendMessage)
	r.GET("/messages", chat.Messages)
	r.GET("/ws", chat.WebSocketHandler)
}
