package services

import (
	"AyurClinic/models"
	"AyurClinic/repositories"
	"AyurClinic/utils"
	"context"
	"fmt"
)

type ConsultationService interface {
	Submit(ctx context.Context, request *models.ConsultationRequest) error
	GetByID(ctx context.Context, id uint) (*models.ConsultationRequest, error)
	List(ctx context.Context, status models.ConsultationRequestStatus, page, limit int) ([]models.ConsultationRequest, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.ConsultationRequestStatus) error
}

type consultationService struct {
	repository repositories.ConsultationRepository
	mailer     *utils.Mailer
}

func NewConsultationService(repository repositories.ConsultationRepository, mailer *utils.Mailer) ConsultationService {
	return &consultationService{repository: repository, mailer: mailer}
}

func (s *consultationService) Submit(ctx context.Context, request *models.ConsultationRequest) error {
	if err := utils.ValidateConsultationRequest(*request); err != nil {
		return err
	}

	request.Status = models.ConsultationPending
	if err := s.repository.Create(ctx, request); err != nil {
		return err
	}

	s.mailer.SendClinicNotice("New Consultation Request",
		fmt.Sprintf("%s %s (%s, %s) requested a %s consultation on %s at %s.\n\nHealth concerns: %s",
			request.FirstName, request.LastName, request.Email, request.Phone,
			request.ConsultationType, request.PreferredDate, request.PreferredTime,
			request.HealthConcerns))
	return nil
}

func (s *consultationService) GetByID(ctx context.Context, id uint) (*models.ConsultationRequest, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *consultationService) List(ctx context.Context, status models.ConsultationRequestStatus, page, limit int) ([]models.ConsultationRequest, int64, error) {
	return s.repository.List(ctx, status, page, limit)
}

func (s *consultationService) UpdateStatus(ctx context.Context, id uint, status models.ConsultationRequestStatus) error {
	if !models.ValidConsultationStatus(status) {
		return models.NewValidationError("status", "must be one of pending, confirmed, cancelled, completed")
	}

	request, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// Completed and cancelled requests stay put.
	if request.Status == models.ConsultationCompleted || request.Status == models.ConsultationCancelled {
		return models.ErrInvalidStateTransition
	}

	return s.repository.UpdateStatus(ctx, id, status)
}
