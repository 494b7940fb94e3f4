package add_participant

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantID must be positive", ErrInvalidInput)
	}

	if req.SessionID <= 0 {
		return fmt.Errorf("%w: sessionID must be positive", ErrInvalidInput)
	}

	identity := req.identity()
	if err := identity.Validate(); err != nil {
		if errors.Is(err, domain.ErrMissingIdentity) {
			return fmt.Errorf("%w: either customerId or name is required", ErrInvalidInput)
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
