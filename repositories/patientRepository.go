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
	"gorm.io/gorm"
)

const (
	PatientCacheExpiry = 24 * time.Hour
)

type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	GetAll(ctx context.Context, page, limit int) ([]models.Patient, int64, error)
	Update(ctx context.Context, patient *models.Patient) error
	ContactExists(ctx context.Context, email, phone, excludeID string) (bool, error)
}

type patientRepository struct {
	cache *cache.Cache
}

func NewPatientRepository(cache *cache.Cache) PatientRepository {
	return &patientRepository{cache: cache}
}

// ContactExists reports whether another patient already uses the email or
// phone; duplicates on either contact identifier are rejected at registration.
func (r *patientRepository) ContactExists(ctx context.Context, email, phone, excludeID string) (bool, error) {
	var count int64
	query := database.DB.WithContext(ctx).Model(&models.Patient{}).
		Where("email = ? OR phone = ?", email, phone)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check patient contact: %w", err)
	}
	return count > 0, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := database.DB.WithContext(ctx).Create(patient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateEntity
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return r.cache.DeleteAll(ctx, "patients_cache*")
}

func (r *patientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getPatientCacheKey(id)
	cachedPatient, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cachedPatient), &patient); err == nil {
			return &patient, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err = database.DB.WithContext(ctx).First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	patientJSON, err := json.Marshal(patient)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patient: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, patientJSON, PatientCacheExpiry); err != nil {
		log.Printf("Failed to set patient in cache: %v", err)
	}

	return &patient, nil
}

func (r *patientRepository) GetAll(ctx context.Context, page, limit int) ([]models.Patient, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := database.DB.WithContext(ctx).Model(&models.Patient{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	var patients []models.Patient
	err := database.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, total, nil
}

// Update writes the full editable column set. The explicit Select keeps
// cleared fields (empty strings) in the statement, which struct Updates would
// otherwise skip as zero values.
func (r *patientRepository) Update(ctx context.Context, patient *models.Patient) error {
	result := database.DB.WithContext(ctx).Model(&models.Patient{}).
		Where("id = ?", patient.ID).
		Select("first_name", "last_name", "email", "phone", "date_of_birth", "gender",
			"address", "occupation", "primary_concern", "symptoms", "allergies",
			"medications", "medical_history", "primary_dosha").
		Updates(patient)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateEntity
		}
		return fmt.Errorf("failed to update patient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(patient.ID)); err != nil {
		return fmt.Errorf("failed to delete patient cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "patients_cache*")
}

func (r *patientRepository) getPatientCacheKey(id string) string {
	return fmt.Sprintf("patient_cache:%s", id)
}
