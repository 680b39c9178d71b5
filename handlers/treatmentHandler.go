package handlers

import (
	"AyurClinic/middlewares"
	"AyurClinic/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TreatmentHandler struct {
	service *services.TreatmentService
}

func NewTreatmentHandler(service *services.TreatmentService) *TreatmentHandler {
	return &TreatmentHandler{service: service}
}

func (h *TreatmentHandler) GetAllTreatments(c *gin.Context) {
	treatments, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"treatments": treatments})
}

func (h *TreatmentHandler) GetCategories(c *gin.Context) {
	categories, err := h.service.GetCategories(c.Request.Context())
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *TreatmentHandler) GetTreatmentByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("treatment_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid treatment ID"})
		return
	}
	treatment, err := h.service.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, treatment)
}
