package repositories

import (
	"AyurClinic/database"
	"AyurClinic/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ConsultationRepository interface {
	Create(ctx context.Context, request *models.ConsultationRequest) error
	GetByID(ctx context.Context, id uint) (*models.ConsultationRequest, error)
	List(ctx context.Context, status models.ConsultationRequestStatus, page, limit int) ([]models.ConsultationRequest, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.ConsultationRequestStatus) error
}

type consultationRepository struct{}

func NewConsultationRepository() ConsultationRepository {
	return &consultationRepository{}
}

func (r *consultationRepository) Create(ctx context.Context, request *models.ConsultationRequest) error {
	if err := database.DB.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("failed to create consultation request: %w", err)
	}
	return nil
}

func (r *consultationRepository) GetByID(ctx context.Context, id uint) (*models.ConsultationRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var request models.ConsultationRequest
	err := database.DB.WithContext(ctx).First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get consultation request: %w", err)
	}
	return &request, nil
}

func (r *consultationRepository) List(ctx context.Context, status models.ConsultationRequestStatus, page, limit int) ([]models.ConsultationRequest, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := database.DB.WithContext(ctx).Model(&models.ConsultationRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count consultation requests: %w", err)
	}

	var requests []models.ConsultationRequest
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list consultation requests: %w", err)
	}
	return requests, total, nil
}

func (r *consultationRepository) UpdateStatus(ctx context.Context, id uint, status models.ConsultationRequestStatus) error {
	result := database.DB.WithContext(ctx).Model(&models.ConsultationRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update consultation request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
