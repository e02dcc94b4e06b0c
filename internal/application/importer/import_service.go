package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/fleet"
	"github.com/rentops/backend/internal/domain/integration"
	"github.com/rentops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProviderFactory builds a catalog provider from connection credentials
type ProviderFactory interface {
	New(config *integration.IntegrationConfig) (integration.CatalogProvider, error)
}

// ImportService runs catalog imports. One run walks the provider's
// pages and folds every item into an outcome accumulator; the pipeline
// itself holds no state between runs.
type ImportService struct {
	configRepo  integration.ConfigRepository
	mappingRepo integration.FieldMappingRepository
	jobRepo     integration.ImportJobRepository
	vehicleRepo fleet.VehicleRepository
	providers   ProviderFactory
	logger      *zap.Logger
}

// NewImportService creates a new ImportService
func NewImportService(
	configRepo integration.ConfigRepository,
	mappingRepo integration.FieldMappingRepository,
	jobRepo integration.ImportJobRepository,
	vehicleRepo fleet.VehicleRepository,
	providers ProviderFactory,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		configRepo:  configRepo,
		mappingRepo: mappingRepo,
		jobRepo:     jobRepo,
		vehicleRepo: vehicleRepo,
		providers:   providers,
		logger:      logger,
	}
}

// itemOutcome is what folding one catalog item produced
type itemOutcome int

const (
	outcomeImported itemOutcome = iota
	outcomeUpdated
	outcomeSkipped
	outcomeFailed
)

// accumulator carries the running result of a fold over catalog items
type accumulator struct {
	counts  integration.ImportCounts
	errs    []string
	written []*fleet.Vehicle
}

func (a accumulator) add(outcome itemOutcome, problem string, vehicle *fleet.Vehicle) accumulator {
	switch outcome {
	case outcomeImported:
		a.counts.Imported++
	case outcomeUpdated:
		a.counts.Updated++
	case outcomeSkipped:
		a.counts.Skipped++
	case outcomeFailed:
		a.counts.Failed++
	}
	if problem != "" {
		a.errs = append(a.errs, problem)
	}
	if vehicle != nil {
		a.written = append(a.written, vehicle)
	}
	return a
}

// Run imports the external catalog for a tenant. The job completes
// even when individual items fail; only an unreachable provider fails
// the whole run.
func (s *ImportService) Run(ctx context.Context, tenantID, configID uuid.UUID, req RunImportRequest) (*ImportJobResponse, error) {
	config, err := s.configRepo.FindByIDForTenant(ctx, tenantID, configID)
	if err != nil {
		return nil, err
	}
	if !config.IsEnabled {
		return nil, integration.ErrIntegrationDisabled
	}

	mappings, err := s.mappingRepo.FindByConfig(ctx, tenantID, configID)
	if err != nil {
		return nil, err
	}

	provider, err := s.providers.New(config)
	if err != nil {
		return nil, err
	}

	options := integration.ImportOptions{
		SkipDuplicates: req.SkipDuplicates,
		UpdateExisting: req.UpdateExisting,
		PageSize:       req.PageSize,
	}

	job := integration.NewImportJob(tenantID, configID, options)
	if req.CreatedBy != nil {
		job.CreatedBy = req.CreatedBy
	}
	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("Catalog import started",
		zap.String("job_id", job.ID.String()),
		zap.String("organization_id", tenantID.String()),
		zap.Int("page_size", options.EffectivePageSize()))

	mapper := NewFieldMapper(mappings)
	acc, fetchErr := s.walk(ctx, tenantID, provider, mapper, options)

	if fetchErr != nil {
		s.logger.Error("Catalog import failed", zap.String("job_id", job.ID.String()), zap.Error(fetchErr))
		if err := job.Fail(fmt.Sprintf("catalog fetch failed: %v", fetchErr)); err != nil {
			return nil, err
		}
	} else {
		if err := job.Complete(acc.counts, acc.errs); err != nil {
			return nil, err
		}
		config.MarkSynced(time.Now())
		if err := s.configRepo.Save(ctx, config); err != nil {
			s.logger.Warn("Failed to stamp last sync time", zap.Error(err))
		}
		s.logger.Info("Catalog import completed",
			zap.String("job_id", job.ID.String()),
			zap.Int("imported", acc.counts.Imported),
			zap.Int("updated", acc.counts.Updated),
			zap.Int("skipped", acc.counts.Skipped),
			zap.Int("failed", acc.counts.Failed))
	}

	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	response := ToImportJobResponse(job)
	response.Vehicles = toWrittenVehicles(acc.written)
	return &response, nil
}

// walk pages through the catalog and folds every item. A fetch error
// aborts the walk and is returned to fail the job.
func (s *ImportService) walk(ctx context.Context, tenantID uuid.UUID, provider integration.CatalogProvider, mapper *FieldMapper, options integration.ImportOptions) (accumulator, error) {
	var acc accumulator
	pageSize := options.EffectivePageSize()

	for page := 1; ; page++ {
		items, err := provider.FetchPage(ctx, page, pageSize)
		if err != nil {
			return acc, err
		}

		for _, item := range items {
			outcome, problem, vehicle := s.fold(ctx, tenantID, mapper, options, item)
			acc = acc.add(outcome, problem, vehicle)
		}

		// A short page means the catalog is exhausted
		if len(items) < pageSize {
			return acc, nil
		}
	}
}

// fold processes one catalog item and reports its outcome along with
// the vehicle it wrote, if any. Failures are contained here so one bad
// item never aborts the run.
func (s *ImportService) fold(ctx context.Context, tenantID uuid.UUID, mapper *FieldMapper, options integration.ImportOptions, item integration.ExternalCatalogItem) (itemOutcome, string, *fleet.Vehicle) {
	patch, problems := mapper.Map(item)

	if !patch.HasIdentity() {
		return outcomeSkipped, fmt.Sprintf("item %s: no license plate, make or model", item.ExternalID), nil
	}

	plate := deref(patch.LicensePlate)
	make := deref(patch.Make)
	model := deref(patch.Model)

	// Duplicate skip matches on any identity field; the update path is
	// deliberately narrower and matches on plate alone.
	if options.SkipDuplicates {
		existing, err := s.vehicleRepo.FindByIdentity(ctx, tenantID, plate, make, model)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return outcomeFailed, fmt.Sprintf("item %s: duplicate check failed: %v", item.ExternalID, err), nil
		}
		if existing != nil {
			return outcomeSkipped, "", nil
		}
	}

	if options.UpdateExisting && plate != "" {
		existing, err := s.vehicleRepo.FindByLicensePlate(ctx, tenantID, plate)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return outcomeFailed, fmt.Sprintf("item %s: lookup failed: %v", item.ExternalID, err), nil
		}
		if existing != nil {
			if err := applyPatch(existing, patch); err != nil {
				return outcomeFailed, fmt.Sprintf("item %s: %v", item.ExternalID, err), nil
			}
			if err := s.vehicleRepo.Save(ctx, existing); err != nil {
				return outcomeFailed, fmt.Sprintf("item %s: save failed: %v", item.ExternalID, err), nil
			}
			return outcomeUpdated, joinProblems(item.ExternalID, problems), existing
		}
	}

	vehicle, err := fleet.NewVehicle(tenantID, plate, make, model)
	if err != nil {
		return outcomeFailed, fmt.Sprintf("item %s: %v", item.ExternalID, err), nil
	}
	if err := applyPatch(vehicle, patch); err != nil {
		return outcomeFailed, fmt.Sprintf("item %s: %v", item.ExternalID, err), nil
	}
	if err := s.vehicleRepo.Save(ctx, vehicle); err != nil {
		return outcomeFailed, fmt.Sprintf("item %s: save failed: %v", item.ExternalID, err), nil
	}

	return outcomeImported, joinProblems(item.ExternalID, problems), vehicle
}

func joinProblems(externalID string, problems []string) string {
	if len(problems) == 0 {
		return ""
	}
	joined := problems[0]
	for _, p := range problems[1:] {
		joined += "; " + p
	}
	return fmt.Sprintf("item %s: %s", externalID, joined)
}

// applyPatch writes every set patch field onto the vehicle
func applyPatch(vehicle *fleet.Vehicle, patch VehiclePatch) error {
	if patch.LicensePlate != nil {
		if err := vehicle.SetLicensePlate(*patch.LicensePlate); err != nil {
			return err
		}
	}
	if patch.Make != nil {
		vehicle.Make = *patch.Make
	}
	if patch.Model != nil {
		vehicle.Model = *patch.Model
	}
	if patch.Year != nil {
		vehicle.Year = *patch.Year
	}
	if patch.Color != nil {
		vehicle.Color = *patch.Color
	}
	if patch.VIN != nil {
		vehicle.VIN = *patch.VIN
	}
	if patch.Mileage != nil {
		vehicle.Mileage = *patch.Mileage
	}
	if patch.FuelType != nil {
		vehicle.FuelType = *patch.FuelType
	}
	if patch.Transmission != nil {
		vehicle.Transmission = *patch.Transmission
	}
	if patch.Seats != nil {
		vehicle.Seats = *patch.Seats
	}
	if patch.VehicleType != nil {
		vehicle.VehicleType = *patch.VehicleType
	}
	if patch.DailyRate != nil {
		if err := vehicle.SetDailyRate(*patch.DailyRate); err != nil {
			return err
		}
	}
	if patch.Quantity != nil && *patch.Quantity > 0 {
		vehicle.Quantity = *patch.Quantity
	}
	if patch.Description != nil {
		vehicle.Description = *patch.Description
	}
	if patch.Status != nil {
		if err := vehicle.SetStatus(*patch.Status); err != nil {
			return err
		}
	}
	if patch.Listing != nil {
		vehicle.SetListing(*patch.Listing)
	}
	if len(patch.Images) > 0 {
		vehicle.SetImages(patch.Images)
	}
	return nil
}

// ResyncItem re-fetches a single catalog item by its external ID and
// applies it to the fleet, updating the matching vehicle when one
// exists. Unlike a full run, a failure here is returned to the caller.
func (s *ImportService) ResyncItem(ctx context.Context, tenantID, configID uuid.UUID, externalID string) (*ResyncResponse, error) {
	config, err := s.configRepo.FindByIDForTenant(ctx, tenantID, configID)
	if err != nil {
		return nil, err
	}
	if !config.IsEnabled {
		return nil, integration.ErrIntegrationDisabled
	}

	mappings, err := s.mappingRepo.FindByConfig(ctx, tenantID, configID)
	if err != nil {
		return nil, err
	}

	provider, err := s.providers.New(config)
	if err != nil {
		return nil, err
	}

	item, err := provider.FetchItem(ctx, externalID)
	if err != nil {
		return nil, err
	}

	mapper := NewFieldMapper(mappings)
	outcome, problem, _ := s.fold(ctx, tenantID, mapper, integration.ImportOptions{UpdateExisting: true}, *item)
	if outcome == outcomeFailed {
		return nil, shared.NewDomainError("RESYNC_FAILED", problem)
	}

	s.logger.Info("Catalog item re-synced",
		zap.String("external_id", externalID),
		zap.String("organization_id", tenantID.String()),
		zap.String("outcome", outcomeName(outcome)))

	return &ResyncResponse{ExternalID: externalID, Outcome: outcomeName(outcome), Problem: problem}, nil
}

func outcomeName(o itemOutcome) string {
	switch o {
	case outcomeImported:
		return "imported"
	case outcomeUpdated:
		return "updated"
	case outcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// GetJob retrieves one import job
func (s *ImportService) GetJob(ctx context.Context, tenantID, jobID uuid.UUID) (*ImportJobResponse, error) {
	job, err := s.jobRepo.FindByIDForTenant(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}

	response := ToImportJobResponse(job)
	return &response, nil
}

// ListJobs retrieves import history for a tenant, newest first
func (s *ImportService) ListJobs(ctx context.Context, tenantID uuid.UUID, page, pageSize int) (*shared.Paginated[ImportJobResponse], error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.OrderBy = "started_at"

	result, err := s.jobRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ImportJobResponse, len(result.Items))
	for i, job := range result.Items {
		responses[i] = ToImportJobResponse(job)
	}

	paged := shared.NewPaginated(responses, result.Total, result.Page, result.PageSize)
	return &paged, nil
}

// FailStaleJobs marks jobs stuck in running as failed. Called on a
// schedule so a crashed run does not stay running forever.
func (s *ImportService) FailStaleJobs(ctx context.Context, olderThan time.Duration) (int, error) {
	stale, err := s.jobRepo.FindStale(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}

	failed := 0
	for _, job := range stale {
		if err := job.Fail("import run abandoned"); err != nil {
			continue
		}
		if err := s.jobRepo.Save(ctx, job); err != nil {
			s.logger.Error("Failed to mark stale job", zap.String("job_id", job.ID.String()), zap.Error(err))
			continue
		}
		failed++
	}

	return failed, nil
}
