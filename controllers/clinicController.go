package controllers

import (
	"AyurClinic/handlers"
	"AyurClinic/middlewares"
	"AyurClinic/models"

	"github.com/gin-gonic/gin"
)

// SetupClinicRoutes registers the patient, appointment, consultation, contact
// and treatment routes. Every staff route sits behind token auth plus the
// capability the operation requires; the public intake routes are open.
func SetupClinicRoutes(
	router *gin.Engine,
	auth gin.HandlerFunc,
	patientHandler *handlers.PatientHandler,
	appointmentHandler *handlers.AppointmentHandler,
	consultationHandler *handlers.ConsultationHandler,
	contactHandler *handlers.ContactHandler,
	treatmentHandler *handlers.TreatmentHandler,
) {
	// Public website intake
	router.POST("/consultation-requests", consultationHandler.SubmitRequest)
	router.POST("/contact", contactHandler.SubmitMessage)
	router.GET("/clinic-info", contactHandler.ClinicInfo)
	router.GET("/treatments", treatmentHandler.GetAllTreatments)
	router.GET("/treatments/categories", treatmentHandler.GetCategories)
	router.GET("/treatments/:treatment_id", treatmentHandler.GetTreatmentByID)

	patients := router.Group("/patients").Use(auth, middlewares.RequirePermission(models.CapViewPatients))
	{
		patients.GET("", patientHandler.GetAllPatients)
		patients.GET("/:patient_id", patientHandler.GetPatientByID)
	}
	patientWrites := router.Group("/patients").Use(auth, middlewares.RequirePermission(models.CapEditPatients))
	{
		patientWrites.POST("", patientHandler.CreatePatient)
		patientWrites.PUT("/:patient_id", patientHandler.UpdatePatient)
	}

	appointments := router.Group("/appointments").Use(auth, middlewares.RequirePermission(models.CapCreateAppointments))
	{
		appointments.POST("", appointmentHandler.CreateAppointment)
	}
	appointmentReads := router.Group("/appointments").Use(auth, middlewares.RequirePermission(models.CapViewPatients))
	{
		appointmentReads.GET("", appointmentHandler.GetAppointments)
		appointmentReads.GET("/:appointment_id", appointmentHandler.GetAppointmentByID)
	}
	appointmentReports := router.Group("/appointments").Use(auth, middlewares.RequirePermission(models.CapViewReports))
	{
		appointmentReports.GET("/stats", appointmentHandler.GetStats)
	}
	appointmentWrites := router.Group("/appointments").Use(auth, middlewares.RequirePermission(models.CapModifyAppointments))
	{
		appointmentWrites.POST("/:appointment_id/confirm", appointmentHandler.ConfirmAppointment)
		appointmentWrites.POST("/:appointment_id/start", appointmentHandler.StartAppointment)
		appointmentWrites.POST("/:appointment_id/complete", appointmentHandler.CompleteAppointment)
		appointmentWrites.POST("/:appointment_id/cancel", appointmentHandler.CancelAppointment)
		appointmentWrites.POST("/:appointment_id/no-show", appointmentHandler.MarkNoShow)
		appointmentWrites.POST("/:appointment_id/reschedule", appointmentHandler.RescheduleAppointment)
	}

	consultations := router.Group("/consultation-requests").Use(auth, middlewares.RequirePermission(models.CapViewPatients))
	{
		consultations.GET("", consultationHandler.GetRequests)
		consultations.GET("/:request_id", consultationHandler.GetRequestByID)
	}
	consultationWrites := router.Group("/consultation-requests").Use(auth, middlewares.RequirePermission(models.CapModifyAppointments))
	{
		consultationWrites.PUT("/:request_id/status", consultationHandler.UpdateRequestStatus)
	}
}
