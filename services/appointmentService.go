package services

import (
	"AyurClinic/config"
	"AyurClinic/models"
	"AyurClinic/repositories"
	"AyurClinic/utils"
	"context"
	"fmt"
	"time"
)

const defaultCancellationReason = "No reason provided"

type AppointmentService interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	List(ctx context.Context, filter repositories.AppointmentFilter) ([]models.Appointment, int64, error)
	Confirm(ctx context.Context, id uint) error
	Start(ctx context.Context, id uint) error
	Complete(ctx context.Context, id uint, notes, treatment, followUp string) error
	Cancel(ctx context.Context, id uint, reason, cancelledBy string) error
	MarkNoShow(ctx context.Context, id uint) error
	Reschedule(ctx context.Context, id uint, newDate, newTime string, newDuration int) (*models.Appointment, error)
	Stats(ctx context.Context) (*models.AppointmentStats, error)
}

type appointmentService struct {
	repository  repositories.AppointmentRepository
	patientRepo repositories.PatientRepository
	mailer      *utils.Mailer
	minMinutes  int
	maxMinutes  int
	loc         *time.Location
	now         func() time.Time
}

// NewAppointmentService builds the scheduling component. Duration bounds come
// from the config; the clock is a field so tests can pin it.
func NewAppointmentService(repository repositories.AppointmentRepository, patientRepo repositories.PatientRepository, mailer *utils.Mailer, cfg *config.AppConfig, loc *time.Location) AppointmentService {
	return &appointmentService{
		repository:  repository,
		patientRepo: patientRepo,
		mailer:      mailer,
		minMinutes:  cfg.MinAppointmentMinutes,
		maxMinutes:  cfg.MaxAppointmentMinutes,
		loc:         loc,
		now:         time.Now,
	}
}

// validateSlot checks the candidate window before any conflict scan: HH:MM
// format, bounded duration, and a start strictly in the future.
func (s *appointmentService) validateSlot(date, startTime string, durationMinutes int) error {
	if !models.ValidTimeOfDay(startTime) {
		return models.NewValidationError("start_time", "must be a 24-hour HH:MM time")
	}
	if durationMinutes < s.minMinutes || durationMinutes > s.maxMinutes {
		return models.NewValidationError("duration_minutes",
			fmt.Sprintf("must be between %d and %d minutes", s.minMinutes, s.maxMinutes))
	}
	start, err := models.CombineDateTime(date, startTime, s.loc)
	if err != nil {
		return models.NewValidationError("date", "must be a valid YYYY-MM-DD date")
	}
	if !start.After(s.now()) {
		return models.NewValidationError("date", "appointment must be scheduled in the future")
	}
	// Conflict checking is scoped to a single calendar date, so a slot must not
	// run past midnight.
	end := start.Add(time.Duration(durationMinutes) * time.Minute)
	midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)
	if end.After(midnight) {
		return models.NewValidationError("start_time", "appointment must end by midnight")
	}
	return nil
}

func (s *appointmentService) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment.PatientID == "" {
		return models.NewValidationError("patient_id", "patient is required")
	}
	if !models.ValidAppointmentType(appointment.Type) {
		return models.NewValidationError("type", "must be one of initial, followup, online, emergency, treatment")
	}
	if appointment.ReasonForVisit == "" {
		return models.NewValidationError("reason_for_visit", "reason for visit is required")
	}
	if err := s.validateSlot(appointment.Date, appointment.StartTime, appointment.DurationMinutes); err != nil {
		return err
	}

	patient, err := s.patientRepo.GetByID(ctx, appointment.PatientID)
	if err != nil {
		return err
	}

	appointment.Status = models.StatusScheduled
	if err := s.repository.Create(ctx, appointment); err != nil {
		return err
	}

	s.mailer.SendAppointmentNotice(patient.Email, patient.FirstName,
		"Appointment Scheduled",
		fmt.Sprintf("Your appointment has been scheduled for %s at %s.", appointment.Date, appointment.StartTime))
	return nil
}

func (s *appointmentService) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *appointmentService) List(ctx context.Context, filter repositories.AppointmentFilter) ([]models.Appointment, int64, error) {
	return s.repository.List(ctx, filter)
}

// transition loads the appointment, validates the lifecycle move, then applies
// it through the repository's guarded update.
func (s *appointmentService) transition(ctx context.Context, id uint, to models.AppointmentStatus, updates map[string]interface{}) (*models.Appointment, error) {
	appointment, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(appointment.Status, to) {
		return nil, models.ErrInvalidStateTransition
	}
	if err := s.repository.Transition(ctx, id, appointment.Status, to, updates); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) Confirm(ctx context.Context, id uint) error {
	appointment, err := s.transition(ctx, id, models.StatusConfirmed, nil)
	if err != nil {
		return err
	}
	s.notifyPatient(ctx, appointment, "Appointment Confirmed",
		fmt.Sprintf("Your appointment on %s at %s has been confirmed.", appointment.Date, appointment.StartTime))
	return nil
}

func (s *appointmentService) Start(ctx context.Context, id uint) error {
	_, err := s.transition(ctx, id, models.StatusInProgress, nil)
	return err
}

func (s *appointmentService) Complete(ctx context.Context, id uint, notes, treatment, followUp string) error {
	now := s.now()
	_, err := s.transition(ctx, id, models.StatusCompleted, map[string]interface{}{
		"completed_at":       now,
		"consultation_notes": notes,
		"treatment_rendered": treatment,
		"follow_up_notes":    followUp,
	})
	return err
}

func (s *appointmentService) Cancel(ctx context.Context, id uint, reason, cancelledBy string) error {
	if reason == "" {
		reason = defaultCancellationReason
	}
	now := s.now()
	appointment, err := s.transition(ctx, id, models.StatusCancelled, map[string]interface{}{
		"cancellation_reason": reason,
		"cancelled_by":        cancelledBy,
		"cancelled_at":        now,
	})
	if err != nil {
		return err
	}
	s.notifyPatient(ctx, appointment, "Appointment Cancelled",
		fmt.Sprintf("Your appointment on %s at %s has been cancelled. Reason: %s", appointment.Date, appointment.StartTime, reason))
	return nil
}

func (s *appointmentService) MarkNoShow(ctx context.Context, id uint) error {
	_, err := s.transition(ctx, id, models.StatusNoShow, nil)
	return err
}

// Reschedule terminates the current appointment and books a replacement whose
// interval independently passes the conflict check.
func (s *appointmentService) Reschedule(ctx context.Context, id uint, newDate, newTime string, newDuration int) (*models.Appointment, error) {
	appointment, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(appointment.Status, models.StatusRescheduled) {
		return nil, models.ErrInvalidStateTransition
	}

	if newDuration == 0 {
		newDuration = appointment.DurationMinutes
	}
	if err := s.validateSlot(newDate, newTime, newDuration); err != nil {
		return nil, err
	}

	now := s.now()
	replacement := &models.Appointment{
		PatientID:         appointment.PatientID,
		Date:              newDate,
		StartTime:         newTime,
		DurationMinutes:   newDuration,
		Status:            models.StatusScheduled,
		Type:              appointment.Type,
		ReasonForVisit:    appointment.ReasonForVisit,
		OriginalDate:      appointment.Date,
		OriginalStartTime: appointment.StartTime,
		RescheduledAt:     &now,
	}

	if err := s.repository.Reschedule(ctx, appointment, replacement); err != nil {
		return nil, err
	}

	s.notifyPatient(ctx, appointment, "Appointment Rescheduled",
		fmt.Sprintf("Your appointment has been moved from %s %s to %s %s.",
			appointment.Date, appointment.StartTime, newDate, newTime))
	return replacement, nil
}

// Stats resolves the reporting window in the clinic's timezone: today plus the
// trailing seven calendar days.
func (s *appointmentService) Stats(ctx context.Context) (*models.AppointmentStats, error) {
	now := s.now().In(s.loc)
	today := now.Format("2006-01-02")
	weekStart := now.AddDate(0, 0, -6).Format("2006-01-02")
	return s.repository.Stats(ctx, today, weekStart)
}

func (s *appointmentService) notifyPatient(ctx context.Context, appointment *models.Appointment, subject, body string) {
	patient, err := s.patientRepo.GetByID(ctx, appointment.PatientID)
	if err != nil {
		return
	}
	s.mailer.SendAppointmentNotice(patient.Email, patient.FirstName, subject, body)
}
