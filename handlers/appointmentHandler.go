package handlers

import (
	"AyurClinic/middlewares"
	"AyurClinic/models"
	"AyurClinic/repositories"
	"AyurClinic/services"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service services.AppointmentService
}

func NewAppointmentHandler(service services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// CreateAppointment binds only the client-settable fields; identifiers,
// status and lifecycle side effects are always server-assigned.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var data struct {
		PatientID       string                 `json:"patient_id"`
		Date            string                 `json:"date"`
		StartTime       string                 `json:"start_time"`
		DurationMinutes int                    `json:"duration_minutes"`
		Type            models.AppointmentType `json:"type"`
		ReasonForVisit  string                 `json:"reason_for_visit"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	appointment := models.Appointment{
		PatientID:       data.PatientID,
		Date:            data.Date,
		StartTime:       data.StartTime,
		DurationMinutes: data.DurationMinutes,
		Type:            data.Type,
		ReasonForVisit:  data.ReasonForVisit,
	}
	if err := h.service.Create(c.Request.Context(), &appointment); err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, err := appointmentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}
	appointment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// GetAppointments lists appointments filtered by patient, status and date range.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	page, limit := paginationParams(c)
	filter := repositories.AppointmentFilter{
		PatientID: c.Query("patient_id"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		Page:      page,
		Limit:     limit,
	}
	if statuses := c.Query("status"); statuses != "" {
		for _, s := range strings.Split(statuses, ",") {
			filter.Statuses = append(filter.Statuses, models.AppointmentStatus(strings.TrimSpace(s)))
		}
	}

	appointments, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments, "total": total, "page": page, "limit": limit})
}

// GetStats serves aggregate appointment counts for the reports view.
func (h *AppointmentHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func (h *AppointmentHandler) ConfirmAppointment(c *gin.Context) {
	h.applyTransition(c, h.service.Confirm)
}

func (h *AppointmentHandler) StartAppointment(c *gin.Context) {
	h.applyTransition(c, h.service.Start)
}

func (h *AppointmentHandler) MarkNoShow(c *gin.Context) {
	h.applyTransition(c, h.service.MarkNoShow)
}

func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	id, err := appointmentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	var data struct {
		ConsultationNotes string `json:"consultation_notes"`
		TreatmentRendered string `json:"treatment_rendered"`
		FollowUpNotes     string `json:"follow_up_notes"`
	}
	// All clinical fields are optional; completion without a body is valid.
	_ = c.ShouldBindJSON(&data)

	if err := h.service.Complete(c.Request.Context(), id, data.ConsultationNotes, data.TreatmentRendered, data.FollowUpNotes); err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	id, err := appointmentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	var data struct {
		Reason string `json:"reason"`
	}
	// Cancellation without a body falls back to the default reason.
	_ = c.ShouldBindJSON(&data)

	cancelledBy := ""
	if user, ok := middlewares.CurrentUser(c); ok {
		cancelledBy = user.Email
	}

	if err := h.service.Cancel(c.Request.Context(), id, data.Reason, cancelledBy); err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// RescheduleAppointment terminates the appointment and returns the
// replacement booking.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	id, err := appointmentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	var data struct {
		Date            string `json:"date"`
		StartTime       string `json:"start_time"`
		DurationMinutes int    `json:"duration_minutes"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	replacement, err := h.service.Reschedule(c.Request.Context(), id, data.Date, data.StartTime, data.DurationMinutes)
	if err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, replacement)
}

func (h *AppointmentHandler) applyTransition(c *gin.Context, fn func(ctx context.Context, id uint) error) {
	id, err := appointmentID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}
	if err := fn(c.Request.Context(), id); err != nil {
		middlewares.WriteError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func appointmentID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("appointment_id"), 10, 64)
	return uint(id), err
}
