package integration

import (
	"time"

	"github.com/google/uuid"
	"github.com/rentops/backend/internal/domain/shared"
)

// ImportJobStatus represents the lifecycle status of an import run
type ImportJobStatus string

const (
	ImportJobRunning   ImportJobStatus = "running"
	ImportJobCompleted ImportJobStatus = "completed"
	ImportJobFailed    ImportJobStatus = "failed"
)

// IsTerminal returns true if the job can no longer change state
func (s ImportJobStatus) IsTerminal() bool {
	return s == ImportJobCompleted || s == ImportJobFailed
}

// DefaultImportPageSize is used when the job options do not set one
const DefaultImportPageSize = 100

// ImportOptions controls how a single import run treats the catalog
type ImportOptions struct {
	SkipDuplicates bool `json:"skip_duplicates"`
	UpdateExisting bool `json:"update_existing"`
	PageSize       int  `json:"page_size"`
}

// EffectivePageSize returns the configured page size or the default
func (o ImportOptions) EffectivePageSize() int {
	if o.PageSize <= 0 {
		return DefaultImportPageSize
	}
	return o.PageSize
}

// ImportCounts accumulates the outcome of each catalog item in a run
type ImportCounts struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Total returns the number of items the run looked at
func (c ImportCounts) Total() int {
	return c.Imported + c.Updated + c.Skipped + c.Failed
}

// ImportJob records one import run against an integration. It starts
// running and transitions exactly once to completed or failed.
type ImportJob struct {
	shared.TenantAggregateRoot
	ConfigID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status     ImportJobStatus `gorm:"type:varchar(20);not null;default:'running'"`
	Options    ImportOptions   `gorm:"serializer:json"`
	Counts     ImportCounts    `gorm:"embedded;embeddedPrefix:count_"`
	Errors     []string        `gorm:"serializer:json"`
	StartedAt  time.Time       `gorm:"not null"`
	FinishedAt *time.Time
}

// TableName returns the table name for GORM
func (ImportJob) TableName() string {
	return "import_jobs"
}

// NewImportJob creates a running job
func NewImportJob(tenantID, configID uuid.UUID, options ImportOptions) *ImportJob {
	return &ImportJob{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ConfigID:            configID,
		Status:              ImportJobRunning,
		Options:             options,
		StartedAt:           time.Now(),
	}
}

// Complete finishes the job successfully with its final counts. Item
// level errors are kept alongside, a job with partial failures still
// completes.
func (j *ImportJob) Complete(counts ImportCounts, itemErrors []string) error {
	if j.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Import job already finished")
	}

	now := time.Now()
	j.Status = ImportJobCompleted
	j.Counts = counts
	j.Errors = itemErrors
	j.FinishedAt = &now
	j.UpdatedAt = now
	j.IncrementVersion()

	return nil
}

// Fail finishes the job with a fatal error. Only a failure to reach
// the provider at all takes this path.
func (j *ImportJob) Fail(cause string) error {
	if j.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Import job already finished")
	}

	now := time.Now()
	j.Status = ImportJobFailed
	j.Errors = append(j.Errors, cause)
	j.FinishedAt = &now
	j.UpdatedAt = now
	j.IncrementVersion()

	return nil
}

// Duration returns how long the job ran, zero while still running
func (j *ImportJob) Duration() time.Duration {
	if j.FinishedAt == nil {
		return 0
	}
	return j.FinishedAt.Sub(j.StartedAt)
}
