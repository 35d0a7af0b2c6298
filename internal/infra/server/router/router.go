// Package router sets up the HTTP routing for the application.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers served by the router.
type Controllers struct {
	Health     *controller.HealthController
	Auth       *controller.AuthController
	Expense    *controller.ExpenseController
	Budget     *controller.BudgetController
	Settings   *controller.SettingsController
	Recurring  *controller.RecurringController
	Prediction *controller.PredictionController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	controllers      Controllers
	loginRateLimiter *middleware.RateLimiter
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		controllers:      controllers,
		loginRateLimiter: loginRateLimiter,
		authMiddleware:   authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(cfg config.ServerConfig) *gin.Engine {
	switch cfg.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.HandleMethodNotAllowed = true
	r.engine.Use(gin.Recovery())
	r.engine.Use(requestid.New())
	r.engine.Use(middleware.RequestLogger(slog.Default().With("component", "http")))

	if len(cfg.CORSOrigins) > 0 {
		r.engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found", RequestID: requestid.Get(c)})
	})
	r.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.ErrorResponse{Error: "Method not allowed", RequestID: requestid.Get(c)})
	})

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	if r.controllers.Health != nil {
		r.engine.GET("/health", r.controllers.Health.Check)
	}
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	c := r.controllers

	if c.Auth != nil {
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.rateLimited(), c.Auth.Register)
			auth.POST("/login", r.rateLimited(), c.Auth.Login)
			auth.POST("/refresh", c.Auth.RefreshToken)
			auth.POST("/logout", c.Auth.Logout)
		}
	}

	if r.authMiddleware == nil {
		return
	}
	authenticated := v1.Group("")
	authenticated.Use(r.authMiddleware.Authenticate())

	if c.Expense != nil {
		expenses := authenticated.Group("/expenses")
		{
			expenses.GET("", c.Expense.List)
			expenses.POST("", c.Expense.Create)
			expenses.GET("/breakdown", c.Expense.Breakdown)
			expenses.POST("/suggest-category", c.Expense.SuggestCategory)
			expenses.PATCH("/:id", c.Expense.Update)
			expenses.DELETE("/:id", c.Expense.Delete)
		}
	}

	if c.Budget != nil {
		budgets := authenticated.Group("/budgets")
		{
			budgets.GET("", c.Budget.List)
			budgets.POST("", c.Budget.Create)
			budgets.GET("/active/status", c.Budget.ActiveStatus)
			budgets.GET("/:id", c.Budget.Get)
			budgets.PATCH("/:id", c.Budget.Update)
			budgets.DELETE("/:id", c.Budget.Delete)
			budgets.GET("/:id/status", c.Budget.Status)
		}
	}

	if c.Settings != nil {
		settings := authenticated.Group("/settings")
		{
			settings.GET("", c.Settings.Get)
			settings.PUT("", c.Settings.Update)
			settings.GET("/category-limits/status", c.Settings.CategoryLimitStatus)
		}
	}

	if c.Recurring != nil {
		recurring := authenticated.Group("/recurring-expenses")
		{
			recurring.GET("", c.Recurring.List)
			recurring.POST("", c.Recurring.Create)
			recurring.POST("/materialize", c.Recurring.Materialize)
			recurring.GET("/pending", c.Recurring.ListPending)
			recurring.POST("/pending/:id/confirm", c.Recurring.Confirm)
			recurring.POST("/pending/:id/skip", c.Recurring.Skip)
			recurring.PATCH("/:id", c.Recurring.Update)
			recurring.DELETE("/:id", c.Recurring.Delete)
		}
	}

	if c.Prediction != nil {
		authenticated.GET("/predictions", c.Prediction.Get)
	}
}

func (r *Router) rateLimited() gin.HandlerFunc {
	if r.loginRateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return r.loginRateLimiter.Middleware()
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
