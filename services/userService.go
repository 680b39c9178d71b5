package services

import (
	"AyurClinic/config"
	"AyurClinic/models"
	"AyurClinic/repositories"
	"AyurClinic/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type UserService interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	ValidateAndCreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	ChangeRole(ctx context.Context, userID string, role models.Role) error
	ChangeEmploymentStatus(ctx context.Context, userID string, status models.EmploymentStatus) error
	ChangePassword(ctx context.Context, userID, newPassword string) error
}

type userService struct {
	userRepo         repositories.UserRepository
	lockoutThreshold int
	lockoutDuration  time.Duration
}

// NewUserService builds the credential component. The lockout knobs come from
// the config so they are testable without touching the environment.
func NewUserService(userRepo repositories.UserRepository, cfg *config.AppConfig) UserService {
	return &userService{
		userRepo:         userRepo,
		lockoutThreshold: cfg.LockoutThreshold,
		lockoutDuration:  cfg.LockoutDuration,
	}
}

// Authenticate verifies credentials and enforces the lockout policy. A locked
// account is rejected even when the secret is correct; a secret mismatch bumps
// the failure counter atomically.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now()
	if user.IsLocked(now) {
		return nil, models.ErrAccountLocked
	}
	if !user.IsActive() {
		return nil, models.ErrAccountInactive
	}

	if !utils.CheckPassword(user.Password, password) {
		if err := s.userRepo.RecordFailedLogin(ctx, user, s.lockoutThreshold, s.lockoutDuration); err != nil {
			return nil, err
		}
		return nil, models.ErrInvalidCredentials
	}

	if err := s.userRepo.RecordSuccessfulLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ValidateAndCreateUser(ctx context.Context, user *models.User) error {
	if err := utils.ValidateUserData(*user); err != nil {
		return err
	}

	exists, err := s.userRepo.EmailExists(ctx, user.Email)
	if err != nil {
		return err
	}
	if exists {
		return models.ErrDuplicateEntity
	}

	hashedPassword, err := utils.HashPassword(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashedPassword

	user.ID = uuid.New().String()
	user.SetRole(user.Role)
	user.EmploymentStatus = models.EmploymentActive
	user.LoginAttempts = 0
	user.LockUntil = nil

	return s.userRepo.CreateUser(ctx, user)
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAllUsers(ctx)
}

func (s *userService) ChangeRole(ctx context.Context, userID string, role models.Role) error {
	if !models.ValidRole(role) {
		return models.NewValidationError("role", "must be one of admin, doctor, staff, receptionist")
	}
	return s.userRepo.UpdateRole(ctx, userID, role)
}

// ChangeEmploymentStatus soft-disables an account; identities are never
// physically deleted.
func (s *userService) ChangeEmploymentStatus(ctx context.Context, userID string, status models.EmploymentStatus) error {
	if !models.ValidEmploymentStatus(status) {
		return models.NewValidationError("employment_status", "must be one of active, inactive, suspended, terminated")
	}
	return s.userRepo.UpdateEmploymentStatus(ctx, userID, status)
}

func (s *userService) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if err := utils.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}
	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashedPassword)
}
