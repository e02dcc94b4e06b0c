package org

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/org"
)

// BranchService handles branch management
type BranchService struct {
	branchRepo org.BranchRepository
}

// NewBranchService creates a new BranchService
func NewBranchService(branchRepo org.BranchRepository) *BranchService {
	return &BranchService{
		branchRepo: branchRepo,
	}
}

// Create opens a new branch
func (s *BranchService) Create(ctx context.Context, tenantID uuid.UUID, req CreateBranchRequest) (*BranchResponse, error) {
	branch, err := org.NewBranch(tenantID, req.Name, req.Address, req.City)
	if err != nil {
		return nil, err
	}
	branch.Phone = req.Phone

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	response := ToBranchResponse(branch)
	return &response, nil
}

// List retrieves every branch for a tenant
func (s *BranchService) List(ctx context.Context, tenantID uuid.UUID) ([]BranchResponse, error) {
	branches, err := s.branchRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	responses := make([]BranchResponse, len(branches))
	for i, branch := range branches {
		responses[i] = ToBranchResponse(branch)
	}

	return responses, nil
}

// Update changes branch details
func (s *BranchService) Update(ctx context.Context, tenantID, branchID uuid.UUID, req UpdateBranchRequest) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByIDForTenant(ctx, tenantID, branchID)
	if err != nil {
		return nil, err
	}

	name := branch.Name
	address := branch.Address
	city := branch.City
	phone := branch.Phone
	if req.Name != nil {
		name = *req.Name
	}
	if req.Address != nil {
		address = *req.Address
	}
	if req.City != nil {
		city = *req.City
	}
	if req.Phone != nil {
		phone = *req.Phone
	}

	if err := branch.Update(name, address, city, phone); err != nil {
		return nil, err
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	response := ToBranchResponse(branch)
	return &response, nil
}

// SetActive opens or closes a branch
func (s *BranchService) SetActive(ctx context.Context, tenantID, branchID uuid.UUID, active bool) error {
	branch, err := s.branchRepo.FindByIDForTenant(ctx, tenantID, branchID)
	if err != nil {
		return err
	}

	if active {
		branch.Activate()
	} else {
		branch.Deactivate()
	}

	return s.branchRepo.Save(ctx, branch)
}

// Delete removes a branch
func (s *BranchService) Delete(ctx context.Context, tenantID, branchID uuid.UUID) error {
	if _, err := s.branchRepo.FindByIDForTenant(ctx, tenantID, branchID); err != nil {
		return err
	}
	return s.branchRepo.DeleteForTenant(ctx, tenantID, branchID)
}
