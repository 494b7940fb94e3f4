package create_session_type

import "github.com/m04kA/SMC-GroupSessionService/internal/service/catalog/models"

// CreateSessionTypeRequest HTTP request model
type CreateSessionTypeRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	MinParticipants int     `json:"minParticipants"`
	MaxParticipants int     `json:"maxParticipants"`
	PricePerPerson  float64 `json:"pricePerPerson"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSessionTypeRequest) ToServiceRequest(tenantID int64) *models.CreateTypeRequest {
	return &models.CreateTypeRequest{
		TenantID:        tenantID,
		Name:            r.Name,
		Description:     r.Description,
		MinParticipants: r.MinParticipants,
		MaxParticipants: r.MaxParticipants,
		PricePerPerson:  r.PricePerPerson,
		DurationMinutes: r.DurationMinutes,
	}
}
