package services

import (
	"AyurClinic/config"
	"AyurClinic/models"
	"AyurClinic/repositories"
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	emailExists           func(ctx context.Context, email string) (bool, error)
	createUser            func(ctx context.Context, user *models.User) error
	getUserByID           func(ctx context.Context, userID string) (*models.User, error)
	getUserByEmail        func(ctx context.Context, email string) (*models.User, error)
	getAllUsers           func(ctx context.Context) ([]models.User, error)
	recordFailedLogin     func(ctx context.Context, user *models.User, threshold int, lockDuration time.Duration) error
	recordSuccessfulLogin func(ctx context.Context, userID string) error
	updateRole            func(ctx context.Context, userID string, role models.Role) error
	updateEmployment      func(ctx context.Context, userID string, status models.EmploymentStatus) error
	updatePassword        func(ctx context.Context, userID string, hashedPassword string) error
}

var _ repositories.UserRepository = (*mockUserRepository)(nil)

func (m *mockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExists(ctx, email)
}
func (m *mockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return m.createUser(ctx, user)
}
func (m *mockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return m.getUserByID(ctx, userID)
}
func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getUserByEmail(ctx, email)
}
func (m *mockUserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return m.getAllUsers(ctx)
}
func (m *mockUserRepository) RecordFailedLogin(ctx context.Context, user *models.User, threshold int, lockDuration time.Duration) error {
	return m.recordFailedLogin(ctx, user, threshold, lockDuration)
}
func (m *mockUserRepository) RecordSuccessfulLogin(ctx context.Context, userID string) error {
	return m.recordSuccessfulLogin(ctx, userID)
}
func (m *mockUserRepository) UpdateRole(ctx context.Context, userID string, role models.Role) error {
	return m.updateRole(ctx, userID, role)
}
func (m *mockUserRepository) UpdateEmploymentStatus(ctx context.Context, userID string, status models.EmploymentStatus) error {
	return m.updateEmployment(ctx, userID, status)
}
func (m *mockUserRepository) UpdatePassword(ctx context.Context, userID string, hashedPassword string) error {
	return m.updatePassword(ctx, userID, hashedPassword)
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		LockoutThreshold:      5,
		LockoutDuration:       30 * time.Minute,
		MinAppointmentMinutes: 15,
		MaxAppointmentMinutes: 180,
	}
}

// MinCost keeps the tests fast; the service verifies against whatever cost the
// stored hash carries.
func testHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return string(hash)
}

func activeUser(t *testing.T, password string) *models.User {
	u := &models.User{
		ID:               "user-1",
		Email:            "doc@clinic.example",
		Password:         testHash(t, password),
		EmploymentStatus: models.EmploymentActive,
	}
	u.SetRole(models.RoleDoctor)
	return u
}

func TestAuthenticateSuccess(t *testing.T) {
	user := activeUser(t, "Sup3r$ecret")
	resetCalled := false

	repo := &mockUserRepository{
		getUserByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		recordSuccessfulLogin: func(ctx context.Context, userID string) error {
			resetCalled = true
			if userID != user.ID {
				t.Errorf("reset for user %q, want %q", userID, user.ID)
			}
			return nil
		},
	}

	svc := NewUserService(repo, testConfig())
	got, err := svc.Authenticate(context.Background(), user.Email, "Sup3r$ecret")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Authenticate() user = %q, want %q", got.ID, user.ID)
	}
	if !resetCalled {
		t.Error("successful login must reset the failure counter")
	}
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	repo := &mockUserRepository{
		getUserByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
	}

	svc := NewUserService(repo, testConfig())
	_, err := svc.Authenticate(context.Background(), "nobody@clinic.example", "whatever")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("Authenticate() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticateWrongPasswordRecordsFailure(t *testing.T) {
	user := activeUser(t, "Sup3r$ecret")
	var recordedThreshold int
	var recordedDuration time.Duration

	repo := &mockUserRepository{
		getUserByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		recordFailedLogin: func(ctx context.Context, u *models.User, threshold int, lockDuration time.Duration) error {
			recordedThreshold = threshold
			recordedDuration = lockDuration
			return nil
		},
	}

	svc := NewUserService(repo, testConfig())
	_, err := svc.Authenticate(context.Background(), user.Email, "wrong-password")
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("Authenticate() error = %v, want ErrInvalidCredentials", err)
	}
	if recordedThreshold != 5 || recordedDuration != 30*time.Minute {
		t.Errorf("failure recorded with threshold=%d duration=%v, want 5 and 30m", recordedThreshold, recordedDuration)
	}
}

func TestAuthenticateLockedAccount(t *testing.T) {
	// Even the correct password must be rejected while the lock window is open.
	user := activeUser(t, "Sup3r$ecret")
	until := time.Now().Add(10 * time.Minute)
	user.LockUntil = &until
	user.LoginAttempts = 5

	repo := &mockUserRepository{
		getUserByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		recordFailedLogin: func(ctx context.Context, u *models.User, threshold int, lockDuration time.Duration) error {
			t.Error("locked account must not record further failures")
			return nil
		},
	}

	svc := NewUserService(repo, testConfig())
	_, err := svc.Authenticate(context.Background(), user.Email, "Sup3r$ecret")
	if !errors.Is(err, models.ErrAccountLocked) {
		t.Errorf("Authenticate() error = %v, want ErrAccountLocked", err)
	}
}

func TestAuthenticateLockoutSequence(t *testing.T) {
	user := activeUser(t, "Sup3r$ecret")

	// The mock applies the same counter transition the repository persists, so
	// repeated calls walk the real lockout sequence.
	repo := &mockUserRepository{
		getUserByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
		recordFailedLogin: func(ctx context.Context, u *models.User, threshold int, lockDuration time.Duration) error {
			u.LoginAttempts, u.LockUntil = models.NextLockout(u.LoginAttempts, u.LockUntil, time.Now(), threshold, lockDuration)
			return nil
		},
		recordSuccessfulLogin: func(ctx context.Context, userID string) error {
			user.LoginAttempts = 0
			user.LockUntil = nil
			return nil
		},
	}
	svc := NewUserService(repo, testConfig())

	for i := 1; i <= 4; i++ {
		_, err := svc.Authenticate(context.Background(), user.Email, "wrong-password")
		if !errors.Is(err, models.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: error = %v, want ErrInvalidCredentials", i, err)
		}
		if user.IsLocked(time.Now()) {
			t.Fatalf("attempt %d: account locked before the threshold", i)
		}
	}

	// Fifth failure opens the lock window.
	if _, err := svc.Authenticate(context.Background(), user.Email, "wrong-password"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("fifth attempt: error = %v, want ErrInvalidCredentials", err)
	}
	if !user.IsLocked(time.Now()) {
		t.Fatal("fifth failure should lock the account")
	}

	// While locked, even the correct password is rejected.
	if _, err := svc.Authenticate(context.Background(), user.Email, "Sup3r$ecret"); !errors.Is(err, models.ErrAccountLocked) {
		t.Fatalf("locked login: error = %v, want ErrAccountLocked", err)
	}

	// Once the window expires, a failure restarts the count at one.
	expired := time.Now().Add(-time.Minute)
	user.LockUntil = &expired
	if _, err := svc.Authenticate(context.Background(), user.Email, "wrong-password"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("post-expiry attempt: error = %v, want ErrInvalidCredentials", err)
	}
	if user.LoginAttempts != 1 || user.LockUntil != nil {
		t.Errorf("post-expiry counters = (%d, %v), want (1, nil)", user.LoginAttempts, user.LockUntil)
	}
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	user := activeUser(t, "Sup3r$ecret")
	user.EmploymentStatus = models.EmploymentTerminated

	repo := &mockUserRepository{
		getUserByEmail: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := NewUserService(repo, testConfig())
	_, err := svc.Authenticate(context.Background(), user.Email, "Sup3r$ecret")
	if !errors.Is(err, models.ErrAccountInactive) {
		t.Errorf("Authenticate() error = %v, want ErrAccountInactive", err)
	}
}

func TestValidateAndCreateUser(t *testing.T) {
	var created *models.User
	repo := &mockUserRepository{
		emailExists: func(ctx context.Context, email string) (bool, error) { return false, nil },
		createUser: func(ctx context.Context, user *models.User) error {
			created = user
			return nil
		},
	}

	svc := NewUserService(repo, testConfig())
	user := &models.User{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha@clinic.example",
		Phone:     "+919876543210",
		Password:  "Sup3r$ecret",
		Role:      models.RoleReceptionist,
	}

	if err := svc.ValidateAndCreateUser(context.Background(), user); err != nil {
		t.Fatalf("ValidateAndCreateUser() error = %v", err)
	}
	if created == nil {
		t.Fatal("user was not persisted")
	}
	if created.ID == "" {
		t.Error("ID should be assigned")
	}
	if created.Password == "Sup3r$ecret" {
		t.Error("password must be stored hashed")
	}
	if !created.Permissions.CanViewPatients || created.Permissions.CanManageUsers {
		t.Errorf("receptionist permissions wrong: %+v", created.Permissions)
	}
	if created.EmploymentStatus != models.EmploymentActive {
		t.Errorf("new user status = %s, want active", created.EmploymentStatus)
	}
}

func TestValidateAndCreateUserDuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		emailExists: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}

	svc := NewUserService(repo, testConfig())
	user := &models.User{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha@clinic.example",
		Phone:     "+919876543210",
		Password:  "Sup3r$ecret",
		Role:      models.RoleReceptionist,
	}

	if err := svc.ValidateAndCreateUser(context.Background(), user); !errors.Is(err, models.ErrDuplicateEntity) {
		t.Errorf("ValidateAndCreateUser() error = %v, want ErrDuplicateEntity", err)
	}
}

func TestValidateAndCreateUserWeakPassword(t *testing.T) {
	repo := &mockUserRepository{}

	svc := NewUserService(repo, testConfig())
	user := &models.User{
		FirstName: "Asha",
		LastName:  "Verma",
		Email:     "asha@clinic.example",
		Phone:     "+919876543210",
		Password:  "short",
		Role:      models.RoleReceptionist,
	}

	if err := svc.ValidateAndCreateUser(context.Background(), user); err == nil {
		t.Error("expected validation error for weak password")
	}
}

func TestChangeRoleRejectsUnknownRole(t *testing.T) {
	repo := &mockUserRepository{
		updateRole: func(ctx context.Context, userID string, role models.Role) error {
			t.Error("repository must not be reached for an invalid role")
			return nil
		},
	}

	svc := NewUserService(repo, testConfig())
	var fieldErr *models.ValidationError
	err := svc.ChangeRole(context.Background(), "user-1", models.Role("superuser"))
	if !errors.As(err, &fieldErr) {
		t.Errorf("ChangeRole() error = %v, want ValidationError", err)
	}
}
