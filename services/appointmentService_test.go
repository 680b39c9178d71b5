package services

import (
	"AyurClinic/models"
	"AyurClinic/repositories"
	"AyurClinic/utils"
	"context"
	"errors"
	"testing"
	"time"
)

type mockAppointmentRepository struct {
	create     func(ctx context.Context, appointment *models.Appointment) error
	getByID    func(ctx context.Context, id uint) (*models.Appointment, error)
	list       func(ctx context.Context, filter repositories.AppointmentFilter) ([]models.Appointment, int64, error)
	transition func(ctx context.Context, id uint, from, to models.AppointmentStatus, updates map[string]interface{}) error
	reschedule func(ctx context.Context, original *models.Appointment, replacement *models.Appointment) error
	stats      func(ctx context.Context, today, weekStart string) (*models.AppointmentStats, error)
}

var _ repositories.AppointmentRepository = (*mockAppointmentRepository)(nil)

func (m *mockAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return m.create(ctx, appointment)
}
func (m *mockAppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return m.getByID(ctx, id)
}
func (m *mockAppointmentRepository) List(ctx context.Context, filter repositories.AppointmentFilter) ([]models.Appointment, int64, error) {
	return m.list(ctx, filter)
}
func (m *mockAppointmentRepository) Transition(ctx context.Context, id uint, from, to models.AppointmentStatus, updates map[string]interface{}) error {
	return m.transition(ctx, id, from, to, updates)
}
func (m *mockAppointmentRepository) Reschedule(ctx context.Context, original *models.Appointment, replacement *models.Appointment) error {
	return m.reschedule(ctx, original, replacement)
}
func (m *mockAppointmentRepository) Stats(ctx context.Context, today, weekStart string) (*models.AppointmentStats, error) {
	return m.stats(ctx, today, weekStart)
}

type mockPatientRepository struct {
	getByID func(ctx context.Context, id string) (*models.Patient, error)
}

var _ repositories.PatientRepository = (*mockPatientRepository)(nil)

func (m *mockPatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return nil
}
func (m *mockPatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	if m.getByID != nil {
		return m.getByID(ctx, id)
	}
	return &models.Patient{ID: id, FirstName: "Ravi", Email: "ravi@example.com"}, nil
}
func (m *mockPatientRepository) GetAll(ctx context.Context, page, limit int) ([]models.Patient, int64, error) {
	return nil, 0, nil
}
func (m *mockPatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	return nil
}
func (m *mockPatientRepository) ContactExists(ctx context.Context, email, phone, excludeID string) (bool, error) {
	return false, nil
}

// The clock is pinned so "future" is deterministic.
var testNow = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

func newTestAppointmentService(repo *mockAppointmentRepository) *appointmentService {
	return &appointmentService{
		repository:  repo,
		patientRepo: &mockPatientRepository{},
		mailer:      utils.NewMailer("", 0, "", "", "", ""),
		minMinutes:  15,
		maxMinutes:  180,
		loc:         time.UTC,
		now:         func() time.Time { return testNow },
	}
}

func validAppointment() *models.Appointment {
	return &models.Appointment{
		PatientID:       "patient-1",
		Date:            "2026-09-02",
		StartTime:       "10:00",
		DurationMinutes: 60,
		Type:            models.TypeInitial,
		ReasonForVisit:  "Chronic back pain",
	}
}

func TestCreateAppointment(t *testing.T) {
	var created *models.Appointment
	repo := &mockAppointmentRepository{
		create: func(ctx context.Context, appointment *models.Appointment) error {
			created = appointment
			return nil
		},
	}

	svc := newTestAppointmentService(repo)
	if err := svc.Create(context.Background(), validAppointment()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created == nil {
		t.Fatal("appointment was not persisted")
	}
	if created.Status != models.StatusScheduled {
		t.Errorf("new appointment status = %s, want scheduled", created.Status)
	}
}

func TestCreateAppointmentValidation(t *testing.T) {
	repo := &mockAppointmentRepository{
		create: func(ctx context.Context, appointment *models.Appointment) error {
			t.Error("invalid appointment must not reach the repository")
			return nil
		},
	}
	svc := newTestAppointmentService(repo)

	tests := []struct {
		name   string
		mutate func(a *models.Appointment)
	}{
		{"missing patient", func(a *models.Appointment) { a.PatientID = "" }},
		{"unknown type", func(a *models.Appointment) { a.Type = "walk-in" }},
		{"missing reason", func(a *models.Appointment) { a.ReasonForVisit = "" }},
		{"bad time format", func(a *models.Appointment) { a.StartTime = "9:00" }},
		{"time out of range", func(a *models.Appointment) { a.StartTime = "25:00" }},
		{"duration too short", func(a *models.Appointment) { a.DurationMinutes = 10 }},
		{"duration too long", func(a *models.Appointment) { a.DurationMinutes = 200 }},
		{"bad date", func(a *models.Appointment) { a.Date = "2026-13-40" }},
		{"date in the past", func(a *models.Appointment) { a.Date = "2026-08-31" }},
		{"start equal to now", func(a *models.Appointment) { a.Date = "2026-09-01"; a.StartTime = "09:00" }},
		{"slot runs past midnight", func(a *models.Appointment) { a.StartTime = "23:30"; a.DurationMinutes = 60 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAppointment()
			tt.mutate(a)

			var fieldErr *models.ValidationError
			err := svc.Create(context.Background(), a)
			if !errors.As(err, &fieldErr) {
				t.Errorf("Create() error = %v, want ValidationError", err)
			}
		})
	}
}

func TestCreateAppointmentBoundaryDurations(t *testing.T) {
	repo := &mockAppointmentRepository{
		create: func(ctx context.Context, appointment *models.Appointment) error { return nil },
	}
	svc := newTestAppointmentService(repo)

	for _, minutes := range []int{15, 180} {
		a := validAppointment()
		a.DurationMinutes = minutes
		if err := svc.Create(context.Background(), a); err != nil {
			t.Errorf("Create() with %d minutes error = %v, want nil", minutes, err)
		}
	}
}

func TestCreateAppointmentEndingAtMidnight(t *testing.T) {
	// The slot is half-open, so ending exactly at midnight stays on its date.
	repo := &mockAppointmentRepository{
		create: func(ctx context.Context, appointment *models.Appointment) error { return nil },
	}
	svc := newTestAppointmentService(repo)

	a := validAppointment()
	a.StartTime = "23:00"
	a.DurationMinutes = 60
	if err := svc.Create(context.Background(), a); err != nil {
		t.Errorf("Create() ending at midnight error = %v, want nil", err)
	}
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	repo := &mockAppointmentRepository{
		create: func(ctx context.Context, appointment *models.Appointment) error {
			return models.ErrSlotUnavailable
		},
	}
	svc := newTestAppointmentService(repo)

	err := svc.Create(context.Background(), validAppointment())
	if !errors.Is(err, models.ErrSlotUnavailable) {
		t.Errorf("Create() error = %v, want ErrSlotUnavailable", err)
	}
}

func TestConfirmFromScheduled(t *testing.T) {
	var gotFrom, gotTo models.AppointmentStatus
	repo := &mockAppointmentRepository{
		getByID: func(ctx context.Context, id uint) (*models.Appointment, error) {
			a := validAppointment()
			a.ID = id
			a.Status = models.StatusScheduled
			return a, nil
		},
		transition: func(ctx context.Context, id uint, from, to models.AppointmentStatus, updates map[string]interface{}) error {
			gotFrom, gotTo = from, to
			return nil
		},
	}
	svc := newTestAppointmentService(repo)

	if err := svc.Confirm(context.Background(), 7); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if gotFrom != models.StatusScheduled || gotTo != models.StatusConfirmed {
		t.Errorf("transition %s -> %s, want scheduled -> confirmed", gotFrom, gotTo)
	}
}

func TestTerminalTransitionsRejected(t *testing.T) {
	for _, status := range []models.AppointmentStatus{
		models.StatusCompleted, models.StatusCancelled, models.StatusNoShow, models.StatusRescheduled,
	} {
		repo := &mockAppointmentRepository{
			getByID: func(ctx context.Context, id uint) (*models.Appointment, error) {
				a := validAppointment()
				a.ID = id
				a.Status = status
				return a, nil
			},
			transition: func(ctx context.Context, id uint, from, to models.AppointmentStatus, updates map[string]interface{}) error {
				t.Errorf("terminal state %s must not reach the repository", status)
				return nil
			},
		}
		svc := newTestAppointmentService(repo)

		if err := svc.Cancel(context.Background(), 7, "changed my mind", "staff@clinic"); !errors.Is(err, models.ErrInvalidStateTransition) {
			t.Errorf("Cancel() from %s error = %v, want ErrInvalidStateTransition", status, err)
		}
	}
}

func TestCompleteRequiresInProgress(t *testing.T) {
	repo := &mockAppointmentRepository{
		getByID: func(ctx context.Context, id uint) (*models.Appointment, error) {
			a := validAppointment()
			a.ID = id
			a.Status = models.StatusConfirmed
			return a, nil
		},
	}
	svc := newTestAppointmentService(repo)

	err := svc.Complete(context.Background(), 7, "notes", "abhyanga", "")
	if !errors.Is(err, models.ErrInvalidStateTransition) {
		t.Errorf("Complete() from confirmed error = %v, want ErrInvalidStateTransition", err)
	}
}

func TestCompleteRecordsClinicalFields(t *testing.T) {
	var gotUpdates map[string]interface{}
	repo := &mockAppointmentRepository{
		getByID: func(ctx context.Context, id uint) (*models.Appointment, error) {
			a := validAppointment()
			a.ID = id
			a.Status = models.StatusInProgress
			return a, nil
		},
		transition: func(ctx context.Context, id uint, from, to models.AppointmentStatus, updates map[string]interface{}) error {
			gotUpdates = updates
			return nil
		},
	}
	svc := newTestAppointmentService(repo)

	if err := svc.Complete(context.Background(), 7, "responded well", "shirodhara", "review in 2 weeks"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if gotUpdates["consultation_notes"] != "responded well" {
		t.Errorf("consultation_notes = %v", gotUpdates["consultation_notes"])
	}
	if gotUpdates["treatment_rendered"] != "shirodhara" {
		t.Errorf("treatment_rendered = %v", gotUpdates["treatment_rendered"])
	}
	if gotUpdates["completed_at"] != testNow {
		t.Errorf("completed_at = %v, want %v", gotUpdates["completed_at"], testNow)
	}
}

func TestCancelDefaultsReason(t *testing.T) {
	var gotUpdates map[string]interface{}
	repo := &mockAppointmentRepository{
		getByID: func(ctx context.Context, id uint) (*models.Appointment, error) {
			a := validAppointment()
			a.ID = id
			a.Status = models.StatusScheduled
			return a, nil
		},
		transition: func(ctx context.Context, id uint, from, to models.AppointmentStatus, updates map[string]interface{}) error {
			gotUpdates = updates
			return nil
		},
	}
	svc := newTestAppointmentService(repo)

	if err := svc.Cancel(context.Background(), 7, "", "reception@clinic"); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if gotUpdates["cancellation_reason"] != defaultCancellationReason {
		t.Errorf("cancellation_reason = %v, want default", gotUpdates["cancellation_reason"])
	}
	if gotUpdates["cancelled_by"] != "reception@clinic" {
		t.Errorf("cancelled_by = %v", gotUpdates["cancelled_by"])
	}
}

func TestReschedule(t *testing.T) {
	var gotOriginal, gotReplacement *models.Appointment
	repo := &mockAppointmentRepository{
		getByID: func(ctx context.Context, id uint) (*models.Appointment, error) {
			a := validAppointment()
			a.ID = id
			a.Status = models.StatusConfirmed
			return a, nil
		},
		reschedule: func(ctx context.Context, original *models.Appointment, replacement *models.Appointment) error {
			gotOriginal, gotReplacement = original, replacement
			return nil
		},
	}
	svc := newTestAppointmentService(repo)

	replacement, err := svc.Reschedule(context.Background(), 7, "2026-09-03", "14:00", 0)
	if err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}
	if gotOriginal == nil || gotReplacement == nil {
		t.Fatal("Reschedule() did not reach the repository")
	}
	if replacement.Status != models.StatusScheduled {
		t.Errorf("replacement status = %s, want scheduled", replacement.Status)
	}
	if replacement.PatientID != gotOriginal.PatientID {
		t.Error("replacement must keep the patient")
	}
	if replacement.DurationMinutes != gotOriginal.DurationMinutes {
		t.Error("zero duration should inherit the original duration")
	}
	if replacement.OriginalDate != "2026-09-02" || replacement.OriginalStartTime != "10:00" {
		t.Errorf("replacement original slot = %s %s, want 2026-09-02 10:00",
			replacement.OriginalDate, replacement.OriginalStartTime)
	}
	if replacement.RescheduledAt == nil || !replacement.RescheduledAt.Equal(testNow) {
		t.Errorf("rescheduled_at = %v, want %v", replacement.RescheduledAt, testNow)
	}
}

func TestRescheduleValidatesNewSlot(t *testing.T) {
	repo := &mockAppointmentRepository{
		getByID: func(ctx context.Context, id uint) (*models.Appointment, error) {
			a := validAppointment()
			a.ID = id
			a.Status = models.StatusScheduled
			return a, nil
		},
		reschedule: func(ctx context.Context, original *models.Appointment, replacement *models.Appointment) error {
			t.Error("invalid new slot must not reach the repository")
			return nil
		},
	}
	svc := newTestAppointmentService(repo)

	var fieldErr *models.ValidationError
	if _, err := svc.Reschedule(context.Background(), 7, "2026-08-01", "14:00", 60); !errors.As(err, &fieldErr) {
		t.Errorf("Reschedule() into the past error = %v, want ValidationError", err)
	}
}

func TestStatsResolvesTrailingWeek(t *testing.T) {
	var gotToday, gotWeekStart string
	want := &models.AppointmentStats{Today: 3, Week: 12}
	repo := &mockAppointmentRepository{
		stats: func(ctx context.Context, today, weekStart string) (*models.AppointmentStats, error) {
			gotToday, gotWeekStart = today, weekStart
			return want, nil
		},
	}
	svc := newTestAppointmentService(repo)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats != want {
		t.Error("Stats() must return the repository rollup")
	}
	if gotToday != "2026-09-01" {
		t.Errorf("today = %s, want 2026-09-01", gotToday)
	}
	if gotWeekStart != "2026-08-26" {
		t.Errorf("week start = %s, want 2026-08-26", gotWeekStart)
	}
}

func TestRescheduleFromTerminalState(t *testing.T) {
	repo := &mockAppointmentRepository{
		getByID: func(ctx context.Context, id uint) (*models.Appointment, error) {
			a := validAppointment()
			a.ID = id
			a.Status = models.StatusCompleted
			return a, nil
		},
	}
	svc := newTestAppointmentService(repo)

	if _, err := svc.Reschedule(context.Background(), 7, "2026-09-03", "14:00", 60); !errors.Is(err, models.ErrInvalidStateTransition) {
		t.Errorf("Reschedule() from completed error = %v, want ErrInvalidStateTransition", err)
	}
}
