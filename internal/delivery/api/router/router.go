// Package router wires the API handlers to their routes.
package router

import (
	"github.com/gvr1220/user-management/internal/delivery/api/middleware"
	"github.com/gvr1220/user-management/internal/delivery/api/router/handler"
	"github.com/gvr1220/user-management/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Public account routes
	e.POST("/register", r.accountHandler.Register)
	e.POST("/login", r.accountHandler.Login)
	e.GET("/verify-email/:user_id/:token", r.accountHandler.VerifyEmail)

	// User administration requires an ADMIN or MANAGER access token
	usersGroup := e.Group("/users")
	usersGroup.Use(r.authMiddleware.Authenticate)
	usersGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleManager))
	{
		usersGroup.GET("", r.userHandler.List)
		usersGroup.GET("/search", r.userHandler.Search)
		usersGroup.GET("/:id", r.userHandler.Get)
		usersGroup.PUT("/:id", r.userHandler.Update)
		usersGroup.DELETE("/:id", r.userHandler.Delete)
		usersGroup.POST("/:id/unlock", r.userHandler.Unlock)
		usersGroup.POST("/:id/reset-password", r.userHandler.ResetPassword)
	}
}
