package update_session_type

import "github.com/m04kA/SMC-GroupSessionService/internal/service/catalog/models"

// UpdateSessionTypeRequest HTTP request model
type UpdateSessionTypeRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	MinParticipants int     `json:"minParticipants"`
	MaxParticipants int     `json:"maxParticipants"`
	PricePerPerson  float64 `json:"pricePerPerson"`
	DurationMinutes int     `json:"durationMinutes"`
	Active          bool    `json:"active"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSessionTypeRequest) ToServiceRequest(tenantID, typeID int64) *models.UpdateTypeRequest {
	return &models.UpdateTypeRequest{
		TenantID:        tenantID,
		TypeID:          typeID,
		Name:            r.Name,
		Description:     r.Description,
		MinParticipants: r.MinParticipants,
		MaxParticipants: r.MaxParticipants,
		PricePerPerson:  r.PricePerPerson,
		DurationMinutes: r.DurationMinutes,
		Active:          r.Active,
	}
}
