package integration

import (
	"strings"

	"github.com/rentops/backend/internal/domain/shared"
)

// ValidationError carries every problem found when checking an
// integration config so the caller can present them all at once
type ValidationError struct {
	Problems []string
}

// NewValidationError wraps a list of validation problems
func NewValidationError(problems []string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	return "invalid integration config: " + strings.Join(e.Problems, "; ")
}

var (
	// ErrProviderUnavailable is returned when the external catalog
	// cannot be reached or answers with a non-success status
	ErrProviderUnavailable = shared.NewDomainError("PROVIDER_UNAVAILABLE", "External catalog provider is unavailable")

	// ErrIntegrationDisabled is returned when an import is requested
	// for a disabled integration
	ErrIntegrationDisabled = shared.NewDomainError("INTEGRATION_DISABLED", "Integration is disabled")

	// ErrItemUnidentifiable is returned when a catalog item maps to a
	// vehicle with no license plate, make or model
	ErrItemUnidentifiable = shared.NewDomainError("ITEM_UNIDENTIFIABLE", "Catalog item has no identifying fields")
)
