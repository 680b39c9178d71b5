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
	TreatmentCacheExpiry = 7 * 24 * time.Hour
)

type TreatmentRepository interface {
	GetAll(ctx context.Context) ([]models.Treatment, error)
	GetByID(ctx context.Context, id uint) (*models.Treatment, error)
	GetCategories(ctx context.Context) ([]models.TreatmentCategory, error)
}

type treatmentRepository struct {
	cache *cache.Cache
}

func NewTreatmentRepository(cache *cache.Cache) TreatmentRepository {
	return &treatmentRepository{cache: cache}
}

func (r *treatmentRepository) GetAll(ctx context.Context) ([]models.Treatment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "treatments_cache"
	cachedTreatments, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var treatments []models.Treatment
		if err := json.Unmarshal([]byte(cachedTreatments), &treatments); err == nil {
			return treatments, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get treatments from cache: %v", err)
	}

	var treatments []models.Treatment
	err = database.DB.WithContext(ctx).Order("id").Find(&treatments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list treatments: %w", err)
	}

	treatmentsJSON, err := json.Marshal(treatments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal treatments: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, treatmentsJSON, TreatmentCacheExpiry); err != nil {
		log.Printf("Failed to set treatments in cache: %v", err)
	}

	return treatments, nil
}

// GetCategories rolls the catalog up by category. The catalog changes rarely,
// so the rollup shares the week-long cache expiry of the full list.
func (r *treatmentRepository) GetCategories(ctx context.Context) ([]models.TreatmentCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "treatment_categories_cache"
	cachedCategories, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var categories []models.TreatmentCategory
		if err := json.Unmarshal([]byte(cachedCategories), &categories); err == nil {
			return categories, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get treatment categories from cache: %v", err)
	}

	var categories []models.TreatmentCategory
	err = database.DB.WithContext(ctx).Model(&models.Treatment{}).
		Select("category as name, count(*) as treatment_count").
		Group("category").
		Order("category").
		Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list treatment categories: %w", err)
	}

	categoriesJSON, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal treatment categories: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, categoriesJSON, TreatmentCacheExpiry); err != nil {
		log.Printf("Failed to set treatment categories in cache: %v", err)
	}

	return categories, nil
}

func (r *treatmentRepository) GetByID(ctx context.Context, id uint) (*models.Treatment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var treatment models.Treatment
	err := database.DB.WithContext(ctx).First(&treatment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get treatment: %w", err)
	}
	return &treatment, nil
}
