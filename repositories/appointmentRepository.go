package repositories

import (
	"AyurClinic/cache"
	"AyurClinic/database"
	"AyurClinic/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AppointmentCacheExpiry = 24 * time.Hour

	lockMaxRetries = 3
	lockRetryDelay = 200 * time.Millisecond
	lockTTL        = 10 * time.Second
)

// AppointmentFilter narrows List queries.
type AppointmentFilter struct {
	PatientID string
	Statuses  []models.AppointmentStatus
	DateFrom  string
	DateTo    string
	Page      int
	Limit     int
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, int64, error)
	Transition(ctx context.Context, id uint, from, to models.AppointmentStatus, updates map[string]interface{}) error
	Reschedule(ctx context.Context, original *models.Appointment, replacement *models.Appointment) error
	Stats(ctx context.Context, today, weekStart string) (*models.AppointmentStats, error)
}

type appointmentRepository struct {
	cache *cache.Cache
	loc   *time.Location
}

func NewAppointmentRepository(cache *cache.Cache, loc *time.Location) AppointmentRepository {
	return &appointmentRepository{cache: cache, loc: loc}
}

// withDateLock serializes writers targeting the same calendar date. The
// conflict check and the insert/update must not interleave with another
// writer's, otherwise two bookings for one slot can both pass the check.
func (r *appointmentRepository) withDateLock(ctx context.Context, date string, fn func() error) error {
	lockKey := fmt.Sprintf("appointment_date_lock:%s", date)
	lockValue := uuid.New().String()

	var locked bool
	var err error
	for i := 0; i < lockMaxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, lockTTL)
		if err == nil && locked {
			break
		}
		if i < lockMaxRetries-1 {
			time.Sleep(lockRetryDelay)
		}
	}
	if err != nil {
		return &models.DependencyError{Dependency: "redis", Err: err}
	}
	if !locked {
		return models.ErrSlotUnavailable
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release date lock: %v", err)
		}
	}()

	return fn()
}

// hasConflictTx scans active appointments on the candidate's date inside the
// current transaction and applies the half-open overlap predicate.
func (r *appointmentRepository) hasConflictTx(tx *gorm.DB, candidate *models.Appointment, excludeID uint) (bool, error) {
	candStart, candEnd, err := candidate.Interval(r.loc)
	if err != nil {
		return false, err
	}

	var existing []models.Appointment
	query := tx.Select("id, date, start_time, duration_minutes, status").
		Where("date = ? AND status IN ?", candidate.Date, models.ActiveStatuses())
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&existing).Error; err != nil {
		return false, fmt.Errorf("failed to query appointments for conflict check: %w", err)
	}

	for i := range existing {
		start, end, err := existing[i].Interval(r.loc)
		if err != nil {
			log.Printf("Skipping appointment %d with unparseable interval: %v", existing[i].ID, err)
			continue
		}
		if models.Overlaps(candStart, candEnd, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	return r.withDateLock(ctx, appointment.Date, func() error {
		err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			conflict, err := r.hasConflictTx(tx, appointment, 0)
			if err != nil {
				return err
			}
			if conflict {
				return models.ErrSlotUnavailable
			}
			return tx.Create(appointment).Error
		})
		if err != nil {
			return err
		}
		return r.invalidateCaches(ctx, appointment.PatientID, appointment.ID)
	})
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getAppointmentCacheKey(id)
	cachedAppointment, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var appointment models.Appointment
		if err := json.Unmarshal([]byte(cachedAppointment), &appointment); err == nil {
			return &appointment, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get appointment from cache: %v", err)
	}

	var appointment models.Appointment
	err = database.DB.WithContext(ctx).
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name, email, phone")
		}).
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	appointmentJSON, err := json.Marshal(appointment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointment: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, appointmentJSON, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointment in cache: %v", err)
	}

	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]models.Appointment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := database.DB.WithContext(ctx).Model(&models.Appointment{})
	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.DateFrom != "" {
		query = query.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("date <= ?", filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var appointments []models.Appointment
	err := query.
		Preload("Patient", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, first_name, last_name, email, phone")
		}).
		Order("date DESC, start_time DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, total, nil
}

// Transition applies a guarded status change. The WHERE clause re-checks the
// expected source status so a concurrent transition makes this a no-op, which
// surfaces as ErrInvalidStateTransition instead of a silent double write.
func (r *appointmentRepository) Transition(ctx context.Context, id uint, from, to models.AppointmentStatus, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = to

	var patientID string
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.Select("id, patient_id").First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return err
		}
		patientID = appointment.PatientID

		result := tx.Model(&models.Appointment{}).
			Where("id = ? AND status = ?", id, from).
			Updates(updates)
		if result.Error != nil {
			return fmt.Errorf("failed to update appointment status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return models.ErrInvalidStateTransition
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.invalidateCaches(ctx, patientID, id)
}

// Reschedule terminates the original appointment and books its replacement in
// one date-locked transaction so the new interval passes the conflict check
// atomically with the write.
func (r *appointmentRepository) Reschedule(ctx context.Context, original *models.Appointment, replacement *models.Appointment) error {
	return r.withDateLock(ctx, replacement.Date, func() error {
		err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			conflict, err := r.hasConflictTx(tx, replacement, original.ID)
			if err != nil {
				return err
			}
			if conflict {
				return models.ErrSlotUnavailable
			}

			now := time.Now()
			result := tx.Model(&models.Appointment{}).
				Where("id = ? AND status = ?", original.ID, original.Status).
				Updates(map[string]interface{}{
					"status":         models.StatusRescheduled,
					"rescheduled_at": now,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to mark appointment rescheduled: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				return models.ErrInvalidStateTransition
			}

			return tx.Create(replacement).Error
		})
		if err != nil {
			return err
		}
		return r.invalidateCaches(ctx, original.PatientID, original.ID)
	})
}

// Stats aggregates the reporting counters in four queries. The date window
// arguments arrive pre-formatted so the clinic's timezone is resolved once, in
// the service.
func (r *appointmentRepository) Stats(ctx context.Context, today, weekStart string) (*models.AppointmentStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stats := &models.AppointmentStats{
		ByStatus: make(map[models.AppointmentStatus]int64),
		ByType:   make(map[models.AppointmentType]int64),
	}

	db := database.DB.WithContext(ctx)
	if err := db.Model(&models.Appointment{}).Where("date = ?", today).Count(&stats.Today).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's appointments: %w", err)
	}
	if err := db.Model(&models.Appointment{}).Where("date >= ? AND date <= ?", weekStart, today).Count(&stats.Week).Error; err != nil {
		return nil, fmt.Errorf("failed to count the week's appointments: %w", err)
	}

	var statusRows []struct {
		Status models.AppointmentStatus
		Count  int64
	}
	if err := db.Model(&models.Appointment{}).
		Select("status, count(*) as count").Group("status").
		Scan(&statusRows).Error; err != nil {
		return nil, fmt.Errorf("failed to count appointments by status: %w", err)
	}
	for _, row := range statusRows {
		stats.ByStatus[row.Status] = row.Count
	}

	var typeRows []struct {
		Type  models.AppointmentType
		Count int64
	}
	if err := db.Model(&models.Appointment{}).
		Select("type, count(*) as count").Group("type").
		Scan(&typeRows).Error; err != nil {
		return nil, fmt.Errorf("failed to count appointments by type: %w", err)
	}
	for _, row := range typeRows {
		stats.ByType[row.Type] = row.Count
	}

	return stats, nil
}

func (r *appointmentRepository) invalidateCaches(ctx context.Context, patientID string, id uint) error {
	if err := r.cache.Delete(ctx, r.getAppointmentCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete appointment cache: %w", err)
	}
	if err := r.cache.DeleteAll(ctx, "appointments_cache*"); err != nil {
		return fmt.Errorf("failed to delete appointments cache: %w", err)
	}
	if err := r.cache.Delete(ctx, fmt.Sprintf("patient_cache:%s", patientID)); err != nil {
		return fmt.Errorf("failed to delete patient cache: %w", err)
	}
	return nil
}

func (r *appointmentRepository) getAppointmentCacheKey(id uint) string {
	return fmt.Sprintf("appointment_cache:%d", id)
}
