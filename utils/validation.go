package utils

import (
	"AyurClinic/models"
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
)

var (
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidateUserData validates a new staff account using ozzo-validation.
func ValidateUserData(user models.User) error {
	return validation.ValidateStruct(&user,
		validation.Field(&user.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&user.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Phone, validation.Required, validation.Match(phonePattern)),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
		validation.Field(&user.Role, validation.Required, validation.By(validateRole)),
	)
}

// ValidatePatientData validates patient registration input.
func ValidatePatientData(patient models.Patient) error {
	return validation.ValidateStruct(&patient,
		validation.Field(&patient.FirstName, validation.Required, validation.Length(1, 50)),
		validation.Field(&patient.LastName, validation.Required, validation.Length(1, 50)),
		validation.Field(&patient.Email, validation.Required, is.Email),
		validation.Field(&patient.Phone, validation.Required, validation.Match(phonePattern)),
		validation.Field(&patient.DateOfBirth, validation.Required, validation.Match(datePattern)),
		validation.Field(&patient.Gender, validation.Required, validation.In("male", "female", "other", "prefer-not-to-say")),
		validation.Field(&patient.PrimaryConcern, validation.Required, validation.Length(1, 1000)),
	)
}

// ValidateConsultationRequest validates the public intake form.
func ValidateConsultationRequest(request models.ConsultationRequest) error {
	return validation.ValidateStruct(&request,
		validation.Field(&request.FirstName, validation.Required, validation.Length(2, 50)),
		validation.Field(&request.LastName, validation.Required, validation.Length(2, 50)),
		validation.Field(&request.Email, validation.Required, is.Email),
		validation.Field(&request.Phone, validation.Required, validation.Match(phonePattern)),
		validation.Field(&request.Age, validation.Required, validation.Min(1), validation.Max(120)),
		validation.Field(&request.Gender, validation.Required, validation.In("male", "female", "other")),
		validation.Field(&request.ConsultationType, validation.Required, validation.In("online", "in-person")),
		validation.Field(&request.PreferredDate, validation.Required, validation.Match(datePattern)),
		validation.Field(&request.PreferredTime, validation.Required, validation.By(validateTimeOfDay)),
		validation.Field(&request.HealthConcerns, validation.Required, validation.Length(1, 1000)),
		validation.Field(&request.Symptoms, validation.Length(0, 500)),
		validation.Field(&request.Medications, validation.Length(0, 500)),
	)
}

// ContactMessage is the public contact-form payload.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ValidateContactMessage validates the contact form.
func ValidateContactMessage(msg ContactMessage) error {
	return validation.ValidateStruct(&msg,
		validation.Field(&msg.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&msg.Email, validation.Required, is.Email),
		validation.Field(&msg.Phone, validation.Required, validation.Match(phonePattern)),
		validation.Field(&msg.Subject, validation.Required, validation.Length(1, 200)),
		validation.Field(&msg.Message, validation.Required, validation.Length(1, 2000)),
	)
}

func validateRole(value interface{}) error {
	role, _ := value.(models.Role)
	if !models.ValidRole(role) {
		return errors.New("must be one of admin, doctor, staff, receptionist")
	}
	return nil
}

func validateTimeOfDay(value interface{}) error {
	s, _ := value.(string)
	if !models.ValidTimeOfDay(s) {
		return errors.New("must be a 24-hour HH:MM time")
	}
	return nil
}

// ValidatePasswordStrength applies the password rules outside of struct
// validation (password changes, resets).
func ValidatePasswordStrength(password string) error {
	return validation.Errors{
		"password": validation.Validate(password, validation.Required, validation.By(validatePassword)),
	}.Filter()
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&#]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}
