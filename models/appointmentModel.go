package models

import (
	"fmt"
	"regexp"
	"time"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusInProgress  AppointmentStatus = "in-progress"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusNoShow      AppointmentStatus = "no-show"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// ActiveStatuses are the non-terminal states still eligible for conflict checking.
func ActiveStatuses() []AppointmentStatus {
	return []AppointmentStatus{StatusScheduled, StatusConfirmed, StatusInProgress}
}

// IsTerminal reports whether no further transition is possible from s.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// CanTransition encodes the lifecycle state machine:
// scheduled -> confirmed -> in-progress -> completed, with cancelled, no-show
// and rescheduled reachable from any active state. Terminal states accept
// nothing, which makes repeated cancels/completes rejections rather than no-ops.
func CanTransition(from, to AppointmentStatus) bool {
	if from.IsTerminal() {
		return false
	}
	switch to {
	case StatusConfirmed:
		return from == StatusScheduled
	case StatusInProgress:
		return from == StatusScheduled || from == StatusConfirmed
	case StatusCompleted:
		return from == StatusInProgress
	case StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// AppointmentType categorizes the visit.
type AppointmentType string

const (
	TypeInitial   AppointmentType = "initial"
	TypeFollowUp  AppointmentType = "followup"
	TypeOnline    AppointmentType = "online"
	TypeEmergency AppointmentType = "emergency"
	TypeTreatment AppointmentType = "treatment"
)

func ValidAppointmentType(t AppointmentType) bool {
	switch t {
	case TypeInitial, TypeFollowUp, TypeOnline, TypeEmergency, TypeTreatment:
		return true
	}
	return false
}

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTimeOfDay reports whether s is a 24-hour HH:MM wall-clock time.
func ValidTimeOfDay(s string) bool {
	return timeOfDayPattern.MatchString(s)
}

const appointmentDateLayout = "2006-01-02"

// CombineDateTime resolves a calendar date and HH:MM wall-clock time into one
// instant in the given location. All scheduling arithmetic works on this
// normalized representation rather than comparing date and time separately.
func CombineDateTime(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	if !ValidTimeOfDay(timeOfDay) {
		return time.Time{}, fmt.Errorf("invalid time %q, expected 24-hour HH:MM", timeOfDay)
	}
	t, err := time.ParseInLocation(appointmentDateLayout+" 15:04", date+" "+timeOfDay, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// Overlaps is the half-open interval test: [aStart, aEnd) and [bStart, bEnd)
// conflict iff aStart < bEnd && bStart < aEnd. Intervals that merely touch do
// not overlap, so back-to-back bookings are allowed.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// AppointmentStats is the reporting rollup: today's load, the trailing week,
// and per-status/per-type counts.
type AppointmentStats struct {
	Today    int64                       `json:"today"`
	Week     int64                       `json:"week"`
	ByStatus map[AppointmentStatus]int64 `json:"by_status"`
	ByType   map[AppointmentType]int64   `json:"by_type"`
}

// Appointment model. Date and StartTime are the stored wall-clock fields;
// StartAt/EndAt are derived through Interval, never persisted.
type Appointment struct {
	ID              uint              `gorm:"primaryKey;autoIncrement;column:id;index" json:"id"`
	PatientID       string            `gorm:"column:patient_id;not null;index" json:"patient_id"`
	Date            string            `gorm:"size:10;column:date;not null;index" json:"date"`
	StartTime       string            `gorm:"size:5;column:start_time;not null" json:"start_time"`
	DurationMinutes int               `gorm:"column:duration_minutes;not null" json:"duration_minutes"`
	Status          AppointmentStatus `gorm:"size:20;column:status;not null;index" json:"status"`
	Type            AppointmentType   `gorm:"size:20;column:type;not null" json:"type"`
	ReasonForVisit  string            `gorm:"type:text;column:reason_for_visit;not null" json:"reason_for_visit"`

	// Cancellation side effects
	CancellationReason string     `gorm:"column:cancellation_reason" json:"cancellation_reason,omitempty"`
	CancelledBy        string     `gorm:"column:cancelled_by" json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	// Completion side effects
	CompletedAt       *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	ConsultationNotes string     `gorm:"type:text;column:consultation_notes" json:"consultation_notes,omitempty"`
	TreatmentRendered string     `gorm:"type:text;column:treatment_rendered" json:"treatment_rendered,omitempty"`
	FollowUpNotes     string     `gorm:"type:text;column:follow_up_notes" json:"follow_up_notes,omitempty"`

	// Rescheduling captures the replaced interval before it is overwritten.
	OriginalDate      string     `gorm:"size:10;column:original_date" json:"original_date,omitempty"`
	OriginalStartTime string     `gorm:"size:5;column:original_start_time" json:"original_start_time,omitempty"`
	RescheduledAt     *time.Time `gorm:"column:rescheduled_at" json:"rescheduled_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Patient   Patient   `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
}

func (Appointment) TableName() string {
	return "appointment"
}

// Interval returns the derived [start, end) instants of the appointment.
func (a *Appointment) Interval(loc *time.Location) (start, end time.Time, err error) {
	start, err = CombineDateTime(a.Date, a.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end = start.Add(time.Duration(a.DurationMinutes) * time.Minute)
	return start, end, nil
}
