package services

import (
	"AyurClinic/models"
	"AyurClinic/repositories"
	"AyurClinic/utils"
	"context"

	"github.com/google/uuid"
)

type PatientService interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	GetAll(ctx context.Context, page, limit int) ([]models.Patient, int64, error)
	Update(ctx context.Context, patient *models.Patient) error
}

type patientService struct {
	repository repositories.PatientRepository
}

func NewPatientService(repository repositories.PatientRepository) PatientService {
	return &patientService{repository: repository}
}

func (s *patientService) Create(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatientData(*patient); err != nil {
		return err
	}

	exists, err := s.repository.ContactExists(ctx, patient.Email, patient.Phone, "")
	if err != nil {
		return err
	}
	if exists {
		return models.ErrDuplicateEntity
	}

	patient.ID = uuid.New().String()
	return s.repository.Create(ctx, patient)
}

func (s *patientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *patientService) GetAll(ctx context.Context, page, limit int) ([]models.Patient, int64, error) {
	return s.repository.GetAll(ctx, page, limit)
}

func (s *patientService) Update(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatientData(*patient); err != nil {
		return err
	}

	exists, err := s.repository.ContactExists(ctx, patient.Email, patient.Phone, patient.ID)
	if err != nil {
		return err
	}
	if exists {
		return models.ErrDuplicateEntity
	}

	return s.repository.Update(ctx, patient)
}
