package handlers

import (
	"AyurClinic/middlewares"
	"AyurClinic/models"
	"AyurClinic/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service services.PatientService
}

func NewPatientHandler(service services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.service.Create(c.Request.Context(), &patient); err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, err := h.service.GetByID(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	page, limit := paginationParams(c)
	patients, total, err := h.service.GetAll(c.Request.Context(), page, limit)
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients, "total": total, "page": page, "limit": limit})
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	patient.ID = c.Param("patient_id")
	if err := h.service.Update(c.Request.Context(), &patient); err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// paginationParams reads page/limit query parameters with sane defaults.
func paginationParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
