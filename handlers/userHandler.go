package handlers

import (
	"AyurClinic/middlewares"
	"AyurClinic/models"
	"AyurClinic/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser registers a new staff account. Admin only.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.userService.ValidateAndCreateUser(c.Request.Context(), &user); err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateRole changes a user's role; the permission columns are rewritten from
// the role in the same update.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var data struct {
		Role models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.userService.ChangeRole(c.Request.Context(), c.Param("user_id"), data.Role); err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *UserHandler) UpdateEmploymentStatus(c *gin.Context) {
	var data struct {
		EmploymentStatus models.EmploymentStatus `json:"employment_status"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.userService.ChangeEmploymentStatus(c.Request.Context(), c.Param("user_id"), data.EmploymentStatus); err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
