// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"doable/internal/delivery/http/middleware"
	"doable/internal/delivery/http/router/handler"
	"doable/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds everything the route table needs, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	TodoHandler       *handler.TodoHandler
	SessionMiddleware *middleware.SessionMiddleware
	Collector         *metrics.Collector
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	todoHandler       *handler.TodoHandler
	sessionMiddleware *middleware.SessionMiddleware
	collector         *metrics.Collector
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		todoHandler:       params.TodoHandler,
		sessionMiddleware: params.SessionMiddleware,
		collector:         params.Collector,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Operational endpoints
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(r.collector.Handler()))

	api := e.Group("/api")

	// Auth routes. Signup, login and logout work without a session; only the
	// session probe requires one.
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/me", r.authHandler.Me, r.sessionMiddleware.Authenticate)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Todo routes, all session-scoped.
	todoGroup := api.Group("/todos")
	todoGroup.Use(r.sessionMiddleware.Authenticate)
	{
		todoGroup.GET("", r.todoHandler.List)
		todoGroup.GET("/deleted", r.todoHandler.ListDeleted)
		todoGroup.POST("", r.todoHandler.Create)
		todoGroup.PUT("/:id", r.todoHandler.Update)
		todoGroup.DELETE("/:id", r.todoHandler.Delete)
	}
}
