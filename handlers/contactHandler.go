package handlers

import (
	"AyurClinic/middlewares"
	"AyurClinic/utils"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	mailer *utils.Mailer
}

func NewContactHandler(mailer *utils.Mailer) *ContactHandler {
	return &ContactHandler{mailer: mailer}
}

// ClinicInfo serves the static clinic profile the public website renders on
// its contact page.
func (h *ContactHandler) ClinicInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Dr. Ishita's Ayurveda Clinic",
		"phone":   "+91 9876543210",
		"email":   "info@ayurclinic.example",
		"address": "123 Wellness Street, Pune, Maharashtra",
		"working_hours": gin.H{
			"monday_to_friday": "9:00 AM - 6:00 PM",
			"saturday":         "9:00 AM - 2:00 PM",
			"sunday":           "Closed",
		},
		"services": []string{
			"Panchakarma Detox",
			"Herbal Consultation",
			"Stress Relief Therapy",
			"Skin & Hair Treatment",
			"Women's Health Package",
			"Diet & Nutrition Plan",
		},
	})
}

// SubmitMessage forwards a website contact-form message to the clinic inbox.
func (h *ContactHandler) SubmitMessage(c *gin.Context) {
	var message utils.ContactMessage
	if err := c.ShouldBindJSON(&message); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := utils.ValidateContactMessage(message); err != nil {
		middlewares.WriteError(c, err)
		return
	}

	h.mailer.SendClinicNotice(
		fmt.Sprintf("Contact Form: %s", message.Subject),
		fmt.Sprintf("From: %s <%s>\nPhone: %s\n\n%s", message.Name, message.Email, message.Phone, message.Message))
	c.JSON(http.StatusAccepted, gin.H{"message": "Message received"})
}
