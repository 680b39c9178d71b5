package models

import (
	"time"
)

// Patient model
type Patient struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	FirstName      string    `gorm:"size:50;column:first_name;not null" json:"first_name"`
	LastName       string    `gorm:"size:50;column:last_name;not null;index" json:"last_name"`
	Email          string    `gorm:"size:255;column:email;not null;unique;index" json:"email"`
	Phone          string    `gorm:"size:20;column:phone;not null;unique" json:"phone"`
	DateOfBirth    string    `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	Gender         string    `gorm:"column:gender;check:gender IN ('male', 'female', 'other', 'prefer-not-to-say');not null" json:"gender"`
	Address        string    `gorm:"column:address" json:"address"`
	Occupation     string    `gorm:"column:occupation" json:"occupation"`
	PrimaryConcern string    `gorm:"type:text;column:primary_concern;not null" json:"primary_concern"`
	Symptoms       string    `gorm:"type:text;column:symptoms" json:"symptoms"`
	Allergies      string    `gorm:"type:text;column:allergies" json:"allergies"`
	Medications    string    `gorm:"type:text;column:medications" json:"medications"`
	MedicalHistory string    `gorm:"type:text;column:medical_history" json:"medical_history"`
	PrimaryDosha   string    `gorm:"column:primary_dosha" json:"primary_dosha"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Appointments []Appointment `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patient"
}
