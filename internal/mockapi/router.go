package mockapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-go/internal/core/domain"
)

// NewRouter builds the Echo instance with all mock routes registered.
func NewRouter(store *Store, recorder *Recorder, issuer *TokenIssuer, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = newValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	// --- Dependencies ---
	authHandler := NewAuthHandler(store, issuer)
	taskHandler := NewTaskHandler(store, recorder)
	jobHandler := NewJobHandler(store)
	authed := Auth(issuer)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authed)
	e.POST("/auth/refresh-token", authHandler.Refresh, authed)
	e.GET("/auth/me", authHandler.Me, authed)

	// --- Task routes ---
	tasks := e.Group("/tasks", authed)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete, RequireRoles(domain.RoleAdmin, domain.RoleManager))
	tasks.GET("/:id/activity", taskHandler.Activity)

	// --- Job search routes ---
	jobs := e.Group("/api/jobs", authed)
	jobs.GET("", jobHandler.Search)
	jobs.GET("/list", jobHandler.List)

	// --- Operational endpoints ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
