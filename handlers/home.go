package handlers

import (
	"net/http"

	"file-chat/middleware"
	"file-chat/templates"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

func Home(c *gin.Context) {
	component := templates.Index(middleware.Username(c), c.Query("error"))
	handler := templ.Handler(component)
	handler.ServeHTTP(c.Writer, c.Request)
}

func Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
