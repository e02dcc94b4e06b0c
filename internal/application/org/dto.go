package org

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/org"
)

// =============================================================================
// Organization DTOs
// =============================================================================

// CreateOrganizationRequest represents a request to register a tenant
type CreateOrganizationRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	Slug       string `json:"slug" binding:"required,min=1,max=100"`
	OwnerEmail string `json:"owner_email" binding:"required,email"`
	OwnerName  string `json:"owner_name" binding:"required,min=1,max=200"`
	Password   string `json:"password" binding:"required,min=8"`
}

// UpdateOrganizationRequest represents a request to update a tenant profile
type UpdateOrganizationRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Country *string `json:"country" binding:"omitempty,max=100"`
}

// OrganizationResponse represents an organization in API responses
type OrganizationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Country   string    `json:"country"`
	Currency  string    `json:"currency"`
	Timezone  string    `json:"timezone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToOrganizationResponse converts a domain organization to a response
func ToOrganizationResponse(o *org.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Slug:      o.Slug,
		Email:     o.Email,
		Phone:     o.Phone,
		Address:   o.Address,
		Country:   o.Country,
		Currency:  o.Currency,
		Timezone:  o.Timezone,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// SettingsResponse represents tenant settings in API responses
type SettingsResponse struct {
	InvoicePrefix      string            `json:"invoice_prefix"`
	InvoiceNextNumber  int64             `json:"invoice_next_number"`
	ContractPrefix     string            `json:"contract_prefix"`
	ContractNextNumber int64             `json:"contract_next_number"`
	DefaultPageSize    int               `json:"default_page_size"`
	Extra              map[string]string `json:"extra"`
}

// ToSettingsResponse converts domain settings to a response
func ToSettingsResponse(s *org.OrganizationSettings) SettingsResponse {
	return SettingsResponse{
		InvoicePrefix:      s.InvoicePrefix,
		InvoiceNextNumber:  s.InvoiceNextNumber,
		ContractPrefix:     s.ContractPrefix,
		ContractNextNumber: s.ContractNextNumber,
		DefaultPageSize:    s.DefaultPageSize,
		Extra:              s.Extra,
	}
}

// UpdateSettingsRequest represents a request to change tenant settings
type UpdateSettingsRequest struct {
	InvoicePrefix   *string           `json:"invoice_prefix" binding:"omitempty,min=1,max=20"`
	ContractPrefix  *string           `json:"contract_prefix" binding:"omitempty,min=1,max=20"`
	DefaultPageSize *int              `json:"default_page_size" binding:"omitempty,min=1,max=200"`
	Extra           map[string]string `json:"extra"`
}

// =============================================================================
// Branch DTOs
// =============================================================================

// CreateBranchRequest represents a request to open a branch
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address" binding:"max=500"`
	City    string `json:"city" binding:"max=100"`
	Phone   string `json:"phone" binding:"max=50"`
}

// UpdateBranchRequest represents a request to update a branch
type UpdateBranchRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	City    *string `json:"city" binding:"omitempty,max=100"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
}

// BranchResponse represents a branch in API responses
type BranchResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	City     string    `json:"city"`
	Phone    string    `json:"phone"`
	IsActive bool      `json:"is_active"`
}

// ToBranchResponse converts a domain branch to a response
func ToBranchResponse(b *org.Branch) BranchResponse {
	return BranchResponse{
		ID:       b.ID,
		Name:     b.Name,
		Address:  b.Address,
		City:     b.City,
		Phone:    b.Phone,
		IsActive: b.IsActive,
	}
}

// =============================================================================
// User and auth DTOs
// =============================================================================

// CreateUserRequest represents a request to add a user to a tenant
type CreateUserRequest struct {
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=8"`
	FullName string     `json:"full_name" binding:"required,min=1,max=200"`
	Role     string     `json:"role" binding:"required,oneof=owner manager staff"`
	BranchID *uuid.UUID `json:"branch_id"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	BranchID    *uuid.UUID `json:"branch_id"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserResponse converts a domain user to a response
func ToUserResponse(u *org.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        string(u.Role),
		BranchID:    u.BranchID,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Slug     string `json:"slug" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// RefreshTokenRequest represents a token refresh attempt
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
