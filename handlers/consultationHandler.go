package handlers

import (
	"AyurClinic/middlewares"
	"AyurClinic/models"
	"AyurClinic/services"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ConsultationHandler struct {
	service services.ConsultationService
}

func NewConsultationHandler(service services.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{service: service}
}

// SubmitRequest accepts a public consultation request from the website.
func (h *ConsultationHandler) SubmitRequest(c *gin.Context) {
	var request models.ConsultationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.service.Submit(c.Request.Context(), &request); err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Consultation request received", "request_id": request.ID})
}

func (h *ConsultationHandler) GetRequests(c *gin.Context) {
	page, limit := paginationParams(c)
	status := models.ConsultationRequestStatus(c.Query("status"))

	requests, total, err := h.service.List(c.Request.Context(), status, page, limit)
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests, "total": total, "page": page, "limit": limit})
}

func (h *ConsultationHandler) GetRequestByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("request_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}
	request, err := h.service.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *ConsultationHandler) UpdateRequestStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("request_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var data struct {
		Status models.ConsultationRequestStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), uint(id), data.Status); err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
