package utils

import (
	"AyurClinic/models"
	"testing"
)

func validUser() models.User {
	return models.User{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha@clinic.example",
		Phone:     "+919876543210",
		Password:  "Sup3r$ecret",
		Role:      models.RoleDoctor,
	}
}

func TestValidateUserData(t *testing.T) {
	if err := ValidateUserData(validUser()); err != nil {
		t.Errorf("valid user rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(u *models.User)
	}{
		{"missing first name", func(u *models.User) { u.FirstName = "" }},
		{"bad email", func(u *models.User) { u.Email = "not-an-email" }},
		{"bad phone", func(u *models.User) { u.Phone = "phone" }},
		{"blank password", func(u *models.User) { u.Password = "" }},
		{"short password", func(u *models.User) { u.Password = "Ab1$" }},
		{"no uppercase", func(u *models.User) { u.Password = "sup3r$ecret" }},
		{"no digit", func(u *models.User) { u.Password = "Super$ecret" }},
		{"no special", func(u *models.User) { u.Password = "Sup3rSecret" }},
		{"unknown role", func(u *models.User) { u.Role = "superuser" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(&u)
			if err := ValidateUserData(u); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	if err := ValidatePasswordStrength("Sup3r$ecret"); err != nil {
		t.Errorf("strong password rejected: %v", err)
	}
	for _, weak := range []string{"", "short", "alllowercase1$", "NOLOWERCASE1$", "NoDigits$$"} {
		if err := ValidatePasswordStrength(weak); err == nil {
			t.Errorf("weak password %q accepted", weak)
		}
	}
}

func TestValidateContactMessage(t *testing.T) {
	msg := ContactMessage{
		Name:    "Ravi Kumar",
		Email:   "ravi@example.com",
		Phone:   "+919812345678",
		Subject: "Question about panchakarma",
		Message: "Do I need a consultation before booking?",
	}
	if err := ValidateContactMessage(msg); err != nil {
		t.Errorf("valid message rejected: %v", err)
	}

	msg.Email = "nope"
	if err := ValidateContactMessage(msg); err == nil {
		t.Error("bad email accepted")
	}
}

func TestValidateConsultationRequest(t *testing.T) {
	request := models.ConsultationRequest{
		FirstName:        "Ravi",
		LastName:         "Kumar",
		Email:            "ravi@example.com",
		Phone:            "+919812345678",
		Age:              34,
		Gender:           "male",
		ConsultationType: "online",
		PreferredDate:    "2026-09-10",
		PreferredTime:    "10:30",
		HealthConcerns:   "Digestive issues and poor sleep",
	}
	if err := ValidateConsultationRequest(request); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	request.PreferredTime = "28:00"
	if err := ValidateConsultationRequest(request); err == nil {
		t.Error("bad preferred time accepted")
	}
}
