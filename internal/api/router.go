package api

import (
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/tubegrab/tubegrab/internal/api/controllers"
	"github.com/tubegrab/tubegrab/internal/app"
)

func RegisterRoutes(e *echo.Echo, app *app.Context) {

	// Middleware: Request Logger
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c *echo.Context, v middleware.RequestLoggerValues) error {
			app.Logger.Info("%s %s | %d | %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	// Browser extension and web client call from other origins
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
	}))

	mediaCtrl := &controllers.MediaController{App: app}
	authCtrl := &controllers.AuthController{App: app}
	historyCtrl := &controllers.HistoryController{App: app}

	// Metadata, progress polling, download
	e.POST("/api/info", mediaCtrl.Info)
	e.GET("/api/progress/:request_id", mediaCtrl.Progress)
	e.GET("/api/download", mediaCtrl.Download)
	e.POST("/api/download", mediaCtrl.Download)

	// Credential artifact management
	e.GET("/api/auth/check", authCtrl.Check)
	e.POST("/api/auth/logout", authCtrl.Logout)
	e.POST("/api/cookies/upload", authCtrl.Upload)
	e.GET("/api/cookies/status", authCtrl.Check)
	e.DELETE("/api/cookies/delete", authCtrl.Delete)

	// Download history
	e.GET("/api/history", historyCtrl.Recent)
}
