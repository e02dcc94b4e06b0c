package org

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRole controls what a user may do within their tenant
type UserRole string

const (
	RoleOwner   UserRole = "owner"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"
)

// IsValid returns true if the role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleStaff:
		return true
	default:
		return false
	}
}

var userEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User is an account able to sign in to a tenant
type User struct {
	shared.TenantAggregateRoot
	Email        string     `gorm:"type:varchar(255);not null;index"`
	PasswordHash string     `gorm:"type:varchar(255);not null;column:password_hash"`
	FullName     string     `gorm:"type:varchar(200);not null"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'staff'"`
	BranchID     *uuid.UUID `gorm:"type:uuid;index"`
	IsActive     bool       `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with a bcrypt password hash
func NewUser(tenantID uuid.UUID, email, password, fullName string, role UserRole) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !userEmailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Invalid user role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewDomainError("HASH_FAILED", "Failed to hash password")
	}

	user := &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               email,
		PasswordHash:        string(hash),
		FullName:            strings.TrimSpace(fullName),
		Role:                role,
		IsActive:            true,
	}

	return user, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored hash
func (u *User) ChangePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return shared.NewDomainError("HASH_FAILED", "Failed to hash password")
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// AssignRole changes the user's role
func (u *User) AssignRole(role UserRole) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Invalid user role")
	}

	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// AssignBranch links the user to a branch
func (u *User) AssignBranch(branchID uuid.UUID) {
	u.BranchID = &branchID
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = time.Now()
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}
