package promote_from_waitlist

import (
	"time"

	promote "github.com/m04kA/SMC-GroupSessionService/internal/usecase/promote_from_waitlist"
)

// PromoteRequest HTTP request model
// entryId не указан - продвигается первый в очереди
type PromoteRequest struct {
	EntryID *int64 `json:"entryId,omitempty"`
}

// PromotedParticipantResponse HTTP response model
type PromotedParticipantResponse struct {
	ParticipantID int64   `json:"participantId"`
	SessionID     int64   `json:"sessionId"`
	CustomerID    *int64  `json:"customerId,omitempty"`
	Name          string  `json:"name"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Status        string  `json:"status"`
	FromPosition  int     `json:"fromPosition"`
	CreatedAt     string  `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *promote.Response) *PromotedParticipantResponse {
	return &PromotedParticipantResponse{
		ParticipantID: resp.ParticipantID,
		SessionID:     resp.SessionID,
		CustomerID:    resp.CustomerID,
		Name:          resp.Name,
		Email:         resp.Email,
		Phone:         resp.Phone,
		Status:        resp.Status,
		FromPosition:  resp.FromPosition,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
