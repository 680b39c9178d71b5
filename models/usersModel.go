package models

import (
	"time"
)

// Role is the closed set of staff roles.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleStaff        Role = "staff"
	RoleReceptionist Role = "receptionist"
)

// ValidRole reports whether r is a member of the role enumeration.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleStaff, RoleReceptionist:
		return true
	}
	return false
}

// EmploymentStatus soft-disables accounts; users are never physically deleted.
type EmploymentStatus string

const (
	EmploymentActive     EmploymentStatus = "active"
	EmploymentInactive   EmploymentStatus = "inactive"
	EmploymentSuspended  EmploymentStatus = "suspended"
	EmploymentTerminated EmploymentStatus = "terminated"
)

func ValidEmploymentStatus(s EmploymentStatus) bool {
	switch s {
	case EmploymentActive, EmploymentInactive, EmploymentSuspended, EmploymentTerminated:
		return true
	}
	return false
}

// Capability names a single boolean permission.
type Capability string

const (
	CapViewPatients       Capability = "view_patients"
	CapEditPatients       Capability = "edit_patients"
	CapCreateAppointments Capability = "create_appointments"
	CapModifyAppointments Capability = "modify_appointments"
	CapViewReports        Capability = "view_reports"
	CapManageUsers        Capability = "manage_users"
	CapAccessFinances     Capability = "access_finances"
)

// Permissions is embedded into User. The column values are never edited by
// hand; they are overwritten from PermissionsForRole whenever the role is set.
type Permissions struct {
	CanViewPatients       bool `gorm:"column:can_view_patients;not null" json:"can_view_patients"`
	CanEditPatients       bool `gorm:"column:can_edit_patients;not null" json:"can_edit_patients"`
	CanCreateAppointments bool `gorm:"column:can_create_appointments;not null" json:"can_create_appointments"`
	CanModifyAppointments bool `gorm:"column:can_modify_appointments;not null" json:"can_modify_appointments"`
	CanViewReports        bool `gorm:"column:can_view_reports;not null" json:"can_view_reports"`
	CanManageUsers        bool `gorm:"column:can_manage_users;not null" json:"can_manage_users"`
	CanAccessFinances     bool `gorm:"column:can_access_finances;not null" json:"can_access_finances"`
}

// PermissionsForRole derives the permission set for a role. It is a pure
// function over the role enumeration; unknown roles get no capabilities.
func PermissionsForRole(role Role) Permissions {
	switch role {
	case RoleAdmin:
		return Permissions{
			CanViewPatients:       true,
			CanEditPatients:       true,
			CanCreateAppointments: true,
			CanModifyAppointments: true,
			CanViewReports:        true,
			CanManageUsers:        true,
			CanAccessFinances:     true,
		}
	case RoleDoctor:
		return Permissions{
			CanViewPatients:       true,
			CanEditPatients:       true,
			CanCreateAppointments: true,
			CanModifyAppointments: true,
			CanViewReports:        true,
		}
	case RoleStaff, RoleReceptionist:
		return Permissions{
			CanViewPatients:       true,
			CanCreateAppointments: true,
			CanModifyAppointments: true,
		}
	default:
		return Permissions{}
	}
}

// Allows reports whether the permission set grants the given capability.
func (p Permissions) Allows(capability Capability) bool {
	switch capability {
	case CapViewPatients:
		return p.CanViewPatients
	case CapEditPatients:
		return p.CanEditPatients
	case CapCreateAppointments:
		return p.CanCreateAppointments
	case CapModifyAppointments:
		return p.CanModifyAppointments
	case CapViewReports:
		return p.CanViewReports
	case CapManageUsers:
		return p.CanManageUsers
	case CapAccessFinances:
		return p.CanAccessFinances
	}
	return false
}

// User represents a staff identity (admin, doctor, staff, receptionist).
type User struct {
	ID               string           `gorm:"primaryKey;column:id" json:"id"`
	FirstName        string           `gorm:"size:50;not null;column:first_name" json:"first_name"`
	LastName         string           `gorm:"size:50;not null;column:last_name" json:"last_name"`
	Email            string           `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Phone            string           `gorm:"size:20;not null;column:phone" json:"phone"`
	Password         string           `gorm:"size:255;not null;column:password" json:"-"`
	Role             Role             `gorm:"size:20;not null;index;column:role" json:"role"`
	Permissions      Permissions      `gorm:"embedded" json:"permissions"`
	EmploymentStatus EmploymentStatus `gorm:"size:20;not null;index;column:employment_status" json:"employment_status"`
	LoginAttempts    int              `gorm:"not null;default:0;column:login_attempts" json:"-"`
	LockUntil        *time.Time       `gorm:"column:lock_until" json:"-"`
	LastLogin        *time.Time       `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt        time.Time        `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// SetRole mutates the role and overwrites the permission set from the
// derivation in one step so the two can never drift apart.
func (u *User) SetRole(role Role) {
	u.Role = role
	u.Permissions = PermissionsForRole(role)
}

// NextLockout computes the failed-login counter transition: an expired lock
// restarts the count at 1 and clears the lock; otherwise the counter
// increments, and reaching the threshold opens a new lock window. The
// repository applies the result with an UPDATE guarded on the counter it was
// computed from, so concurrent failures cannot undercount.
func NextLockout(attempts int, lockUntil *time.Time, now time.Time, threshold int, lockDuration time.Duration) (int, *time.Time) {
	if lockUntil != nil && !lockUntil.After(now) {
		return 1, nil
	}
	attempts++
	if lockUntil == nil && attempts >= threshold {
		until := now.Add(lockDuration)
		return attempts, &until
	}
	return attempts, lockUntil
}

// IsLocked reports whether the lockout window is still open at the given time.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool {
	return u.EmploymentStatus == EmploymentActive
}
