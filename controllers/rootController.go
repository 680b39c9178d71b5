package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetupRootRoute sets up the health check route.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", rootHandler)
	router.GET("/health", rootHandler)
}
