package repositories

import (
	"AyurClinic/cache"
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
	UserCacheExpiry = 24 * time.Hour
)

type UserRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	RecordFailedLogin(ctx context.Context, user *models.User, threshold int, lockDuration time.Duration) error
	RecordSuccessfulLogin(ctx context.Context, userID string) error
	UpdateRole(ctx context.Context, userID string, role models.Role) error
	UpdateEmploymentStatus(ctx context.Context, userID string, status models.EmploymentStatus) error
	UpdatePassword(ctx context.Context, userID string, hashedPassword string) error
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewUserRepository(db *gorm.DB, cache *cache.Cache) UserRepository {
	return &userRepository{db: db, cache: cache}
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateEntity
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getUserCacheKey(userID)
	cachedUser, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var user models.User
		if err := json.Unmarshal([]byte(cachedUser), &user); err == nil {
			return &user, nil
		}
	} else if err != redis.Nil {
		log.Printf("Failed to get user from cache: %v", err)
	}

	var user models.User
	err = r.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, cacheKey, userJSON, UserCacheExpiry); err != nil {
		log.Printf("Failed to set user in cache: %v", err)
	}

	return &user, nil
}

// GetUserByEmail reads straight from the database: the login path must see the
// current lockout counters, not a cached copy.
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var users []models.User
	err := r.db.WithContext(ctx).
		Select("id, first_name, last_name, email, phone, role, employment_status, can_view_patients, can_edit_patients, can_create_appointments, can_modify_appointments, can_view_reports, can_manage_users, can_access_finances, last_login, created_at, updated_at").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

const failedLoginMaxRetries = 3

// RecordFailedLogin applies the transition computed by models.NextLockout.
// The UPDATE is guarded on the counter the transition was computed from, so a
// concurrent failure or reset makes it a no-op; the counters are then
// re-read and the transition recomputed, which keeps the count exact without
// losing the single-statement write.
func (r *userRepository) RecordFailedLogin(ctx context.Context, user *models.User, threshold int, lockDuration time.Duration) error {
	attempts, lockUntil := user.LoginAttempts, user.LockUntil
	for i := 0; i < failedLoginMaxRetries; i++ {
		nextAttempts, nextLock := models.NextLockout(attempts, lockUntil, time.Now(), threshold, lockDuration)

		result := r.db.WithContext(ctx).Model(&models.User{}).
			Where("id = ? AND login_attempts = ?", user.ID, attempts).
			Updates(map[string]interface{}{
				"login_attempts": nextAttempts,
				"lock_until":     nextLock,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to record login attempt: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			return r.invalidateUserCache(ctx, user.ID)
		}

		var fresh models.User
		err := r.db.WithContext(ctx).Select("login_attempts, lock_until").
			First(&fresh, "id = ?", user.ID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to reload login counters: %w", err)
		}
		attempts, lockUntil = fresh.LoginAttempts, fresh.LockUntil
	}
	return fmt.Errorf("failed to record login attempt for user %s: concurrent updates exhausted retries", user.ID)
}

func (r *userRepository) RecordSuccessfulLogin(ctx context.Context, userID string) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"login_attempts": 0,
		"lock_until":     nil,
		"last_login":     now,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}
	return r.invalidateUserCache(ctx, userID)
}

// UpdateRole overwrites the role and every derived permission column in one
// statement; a stale permission set must never survive a role change.
func (r *userRepository) UpdateRole(ctx context.Context, userID string, role models.Role) error {
	perms := models.PermissionsForRole(role)
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"role":                    role,
		"can_view_patients":       perms.CanViewPatients,
		"can_edit_patients":       perms.CanEditPatients,
		"can_create_appointments": perms.CanCreateAppointments,
		"can_modify_appointments": perms.CanModifyAppointments,
		"can_view_reports":        perms.CanViewReports,
		"can_manage_users":        perms.CanManageUsers,
		"can_access_finances":     perms.CanAccessFinances,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return r.invalidateUserCache(ctx, userID)
}

func (r *userRepository) UpdateEmploymentStatus(ctx context.Context, userID string, status models.EmploymentStatus) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Update("employment_status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update employment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return r.invalidateUserCache(ctx, userID)
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID string, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Update("password", hashedPassword)
	if result.Error != nil {
		return fmt.Errorf("failed to update password: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return r.invalidateUserCache(ctx, userID)
}

func (r *userRepository) invalidateUserCache(ctx context.Context, userID string) error {
	if err := r.cache.Delete(ctx, r.getUserCacheKey(userID)); err != nil {
		log.Printf("Failed to delete user cache: %v", err)
	}
	return nil
}

func (r *userRepository) getUserCacheKey(userID string) string {
	return fmt.Sprintf("user_cache:%s", userID)
}
