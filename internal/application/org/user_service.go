package org

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/org"
	"github.com/rentops/backend/internal/domain/shared"
)

// UserService handles user management within a tenant
type UserService struct {
	userRepo org.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo org.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// Create adds a user to a tenant
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this email already exists")
	}

	user, err := org.NewUser(tenantID, req.Email, req.Password, req.FullName, org.UserRole(req.Role))
	if err != nil {
		return nil, err
	}

	if req.BranchID != nil {
		user.AssignBranch(*req.BranchID)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users for a tenant
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, page, pageSize int) (*shared.Paginated[UserResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	result, err := s.userRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(result.Items))
	for i, user := range result.Items {
		responses[i] = ToUserResponse(user)
	}

	paged := shared.NewPaginated(responses, result.Total, result.Page, result.PageSize)
	return &paged, nil
}

// AssignRole changes a user's role
func (s *UserService) AssignRole(ctx context.Context, tenantID, userID uuid.UUID, role string) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	if err := user.AssignRole(org.UserRole(role)); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, user)
}

// ChangePassword replaces a user's password
func (s *UserService) ChangePassword(ctx context.Context, tenantID, userID uuid.UUID, current, next string) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	if !user.CheckPassword(current) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}

	if err := user.ChangePassword(next); err != nil {
		return err
	}

	return s.userRepo.Save(ctx, user)
}

// Deactivate disables a user account. The last owner of a tenant
// cannot be deactivated.
func (s *UserService) Deactivate(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	if user.Role == org.RoleOwner {
		return shared.NewDomainError("FORBIDDEN", "Owner accounts cannot be deactivated")
	}

	user.Deactivate()
	return s.userRepo.Save(ctx, user)
}
