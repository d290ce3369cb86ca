package api

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StaticFS holds the embedded chat client
//
//go:embed static
var StaticFS embed.FS

// SetupStaticRoutes sets up routes for serving static files
func SetupStaticRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		serveStaticFile(c, "index.html", "text/html; charset=utf-8")
	})
	r.GET("/app.js", func(c *gin.Context) {
		serveStaticFile(c, "app.js", "application/javascript")
	})
}

func serveStaticFile(c *gin.Context, filename, contentType string) {
	content, err := StaticFS.ReadFile("static/" + filename)
	if err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}
	c.Header("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'")
	c.Data(http.StatusOK, contentType, content)
}
