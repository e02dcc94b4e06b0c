package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/crm"
	"github.com/rentops/backend/internal/domain/shared"
)

// CommunicationService records and lists customer touchpoints
type CommunicationService struct {
	logRepo      crm.CommunicationLogRepository
	customerRepo crm.CustomerProfileRepository
}

// NewCommunicationService creates a new CommunicationService
func NewCommunicationService(logRepo crm.CommunicationLogRepository, customerRepo crm.CustomerProfileRepository) *CommunicationService {
	return &CommunicationService{
		logRepo:      logRepo,
		customerRepo: customerRepo,
	}
}

// Log records a customer interaction
func (s *CommunicationService) Log(ctx context.Context, tenantID uuid.UUID, req LogCommunicationRequest) (*CommunicationResponse, error) {
	if _, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, req.CustomerID); err != nil {
		return nil, err
	}

	entry, err := crm.NewCommunicationLog(tenantID, req.CustomerID, crm.CommunicationChannel(req.Channel), req.Subject, req.Body)
	if err != nil {
		return nil, err
	}

	if req.LoggedAt != nil {
		entry.LoggedAt = *req.LoggedAt
	}
	if req.CreatedBy != nil {
		entry.CreatedBy = req.CreatedBy
	}

	if err := s.logRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	response := ToCommunicationResponse(entry)
	return &response, nil
}

// ListByCustomer retrieves log entries for a customer, newest first
func (s *CommunicationService) ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, page, pageSize int) ([]CommunicationResponse, int64, error) {
	if _, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID); err != nil {
		return nil, 0, err
	}

	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.OrderBy = "logged_at"

	entries, err := s.logRepo.FindByCustomer(ctx, tenantID, customerID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.logRepo.CountByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CommunicationResponse, len(entries))
	for i := range entries {
		responses[i] = ToCommunicationResponse(&entries[i])
	}

	return responses, total, nil
}
