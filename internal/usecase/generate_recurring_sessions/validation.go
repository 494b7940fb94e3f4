package generate_recurring_sessions

import (
	"fmt"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.SessionTypeID <= 0 {
		return fmt.Errorf("%w: sessionTypeId must be positive", ErrInvalidInput)
	}

	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if len(req.Title) > domain.MaxTitleLength {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.Occurrences < 1 || req.Occurrences > domain.MaxRecurrenceOccurrences {
		return fmt.Errorf("%w: occurrences must be between 1 and %d",
			ErrInvalidInput, domain.MaxRecurrenceOccurrences)
	}

	if req.HostID != nil && *req.HostID <= 0 {
		return fmt.Errorf("%w: hostId must be positive", ErrInvalidInput)
	}

	return nil
}
