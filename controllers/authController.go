package controllers

import (
	"AyurClinic/handlers"
	"AyurClinic/middlewares"
	"AyurClinic/models"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler
	Auth        gin.HandlerFunc
}

// NewAuthController bundles the authentication and user-management routes.
func NewAuthController(authHandler *handlers.AuthHandler, userHandler *handlers.UserHandler, auth gin.HandlerFunc) *AuthController {
	return &AuthController{
		AuthHandler: authHandler,
		UserHandler: userHandler,
		Auth:        auth,
	}
}

// RegisterRoutes initializes all authentication routes directly on the router
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: no authentication required
	router.POST("/auth/login", ac.AuthHandler.Login)

	// Protected routes: requires a valid token
	authGroup := router.Group("/auth").Use(ac.Auth)
	{
		authGroup.GET("/profile", ac.AuthHandler.Profile)
		authGroup.POST("/change-password", ac.AuthHandler.ChangePassword)
	}

	// User management: requires the manage_users capability
	usersGroup := router.Group("/users").Use(ac.Auth, middlewares.RequirePermission(models.CapManageUsers))
	{
		usersGroup.POST("", ac.UserHandler.CreateUser)
		usersGroup.GET("", ac.UserHandler.GetAllUsers)
		usersGroup.GET("/:user_id", ac.UserHandler.GetUserByID)
		usersGroup.PUT("/:user_id/role", ac.UserHandler.UpdateRole)
		usersGroup.PUT("/:user_id/employment-status", ac.UserHandler.UpdateEmploymentStatus)
	}
}
