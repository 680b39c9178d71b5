package models

import (
	"time"
)

// ConsultationRequestStatus is independent of the appointment lifecycle; a
// request is lightweight public intake and never takes part in conflict checks.
type ConsultationRequestStatus string

const (
	ConsultationPending   ConsultationRequestStatus = "pending"
	ConsultationConfirmed ConsultationRequestStatus = "confirmed"
	ConsultationCancelled ConsultationRequestStatus = "cancelled"
	ConsultationCompleted ConsultationRequestStatus = "completed"
)

func ValidConsultationStatus(s ConsultationRequestStatus) bool {
	switch s {
	case ConsultationPending, ConsultationConfirmed, ConsultationCancelled, ConsultationCompleted:
		return true
	}
	return false
}

// ConsultationRequest model
type ConsultationRequest struct {
	ID               uint                      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	FirstName        string                    `gorm:"size:50;column:first_name;not null" json:"first_name"`
	LastName         string                    `gorm:"size:50;column:last_name;not null" json:"last_name"`
	Email            string                    `gorm:"size:255;column:email;not null;index" json:"email"`
	Phone            string                    `gorm:"size:20;column:phone;not null" json:"phone"`
	Age              int                       `gorm:"column:age;not null" json:"age"`
	Gender           string                    `gorm:"column:gender;check:gender IN ('male', 'female', 'other');not null" json:"gender"`
	ConsultationType string                    `gorm:"column:consultation_type;check:consultation_type IN ('online', 'in-person');not null" json:"consultation_type"`
	PreferredDate    string                    `gorm:"size:10;column:preferred_date;not null" json:"preferred_date"`
	PreferredTime    string                    `gorm:"size:5;column:preferred_time;not null" json:"preferred_time"`
	HealthConcerns   string                    `gorm:"type:text;column:health_concerns;not null" json:"health_concerns"`
	Symptoms         string                    `gorm:"type:text;column:symptoms" json:"symptoms"`
	Medications      string                    `gorm:"type:text;column:medications" json:"medications"`
	PreviousVisit    bool                      `gorm:"column:previous_visit;not null" json:"previous_visit"`
	Status           ConsultationRequestStatus `gorm:"size:20;column:status;not null;index" json:"status"`
	CreatedAt        time.Time                 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time                 `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ConsultationRequest) TableName() string {
	return "consultation_request"
}
