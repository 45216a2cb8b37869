package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/transport/http/middleware"
)

type RouterOptions struct {
	AllowedOrigins []string
	// StaticDir holds the built page. Empty or missing disables static serving.
	StaticDir string
	// WebSocket is mounted at /ws when set.
	WebSocket gin.HandlerFunc
}

func NewRouter(games *GameHandler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(opts.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/config", games.GetConfig)
		api.POST("/games", games.CreateGame)
		api.GET("/games/:id", games.GetGame)
		api.DELETE("/games/:id", games.DeleteGame)
		api.POST("/games/:id/moves", games.MakeMove)
		api.POST("/games/:id/restart", games.RestartGame)
	}

	if opts.WebSocket != nil {
		router.GET("/ws", opts.WebSocket)
	}

	if opts.StaticDir != "" {
		if info, err := os.Stat(opts.StaticDir); err == nil && info.IsDir() {
			mountStatic(router, opts.StaticDir)
		}
	}

	return router
}

// mountStatic serves the page with an index.html fallback for client routes.
// Audio samples live under audio/ next to index.html.
func mountStatic(router *gin.Engine, dir string) {
	index := filepath.Join(dir, "index.html")

	router.GET("/", func(c *gin.Context) {
		c.File(index)
	})

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, errorResponse{Error: "not_found", Message: "no such endpoint"})
			return
		}

		path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}

		if strings.HasPrefix(c.Request.URL.Path, "/assets/") || strings.HasPrefix(c.Request.URL.Path, "/audio/") ||
			strings.HasSuffix(c.Request.URL.Path, ".css") || strings.HasSuffix(c.Request.URL.Path, ".js") {
			c.Status(http.StatusNotFound)
			return
		}

		c.File(index)
	})
}
