package handlers

import (
	"AyurClinic/middlewares"
	"AyurClinic/services"
	"AyurClinic/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService services.UserService
	tokenMaker  *utils.TokenMaker
}

func NewAuthHandler(userService services.UserService, tokenMaker *utils.TokenMaker) *AuthHandler {
	return &AuthHandler{userService: userService, tokenMaker: tokenMaker}
}

// Login authenticates the user and returns a token along with the profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.userService.Authenticate(ctx, credentials.Email, credentials.Password)
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}

	token, err := h.tokenMaker.CreateToken(user.ID, string(user.Role), user.Email)
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Profile returns the authenticated user's record.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ChangePassword updates the authenticated user's own password. The current
// password is re-verified so a stolen token alone cannot rotate the secret.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var data struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.userService.Authenticate(ctx, user.Email, data.CurrentPassword); err != nil {
		middlewares.WriteError(c, err)
		return
	}
	if err := h.userService.ChangePassword(ctx, user.ID, data.NewPassword); err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
