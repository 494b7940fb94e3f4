package update_session

import (
	"time"

	"github.com/m04kA/SMC-GroupSessionService/internal/service/schedule/models"
)

// UpdateSessionRequest HTTP request model
// nil поля не изменяются
type UpdateSessionRequest struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	StartTime       *string `json:"startTime,omitempty"` // RFC3339
	HostID          *int64  `json:"hostId,omitempty"`
	ClearHost       bool    `json:"clearHost,omitempty"`
	MaxParticipants *int    `json:"maxParticipants,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSessionRequest) ToServiceRequest(tenantID, sessionID int64) (*models.UpdateSessionRequest, error) {
	req := &models.UpdateSessionRequest{
		TenantID:        tenantID,
		SessionID:       sessionID,
		Title:           r.Title,
		Description:     r.Description,
		HostID:          r.HostID,
		ClearHost:       r.ClearHost,
		MaxParticipants: r.MaxParticipants,
	}

	if r.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}
