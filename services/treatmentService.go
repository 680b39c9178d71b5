package services

import (
	"AyurClinic/models"
	"AyurClinic/repositories"
	"context"
)

type TreatmentService struct {
	repository repositories.TreatmentRepository
}

func NewTreatmentService(repository repositories.TreatmentRepository) *TreatmentService {
	return &TreatmentService{repository: repository}
}

func (s *TreatmentService) GetAll(ctx context.Context) ([]models.Treatment, error) {
	return s.repository.GetAll(ctx)
}

func (s *TreatmentService) GetByID(ctx context.Context, id uint) (*models.Treatment, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *TreatmentService) GetCategories(ctx context.Context) ([]models.TreatmentCategory, error) {
	return s.repository.GetCategories(ctx)
}
