package models

import "github.com/m04kA/SMC-GroupSessionService/internal/domain"

// ParticipantResponse ответ с данными участника после отметки посещаемости
type ParticipantResponse struct {
	ID         int64   `json:"id"`
	SessionID  int64   `json:"sessionId"`
	CustomerID *int64  `json:"customerId,omitempty"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	Paid       bool    `json:"paid"`
}

// CheckInAllResponse результат массовой отметки посещаемости
type CheckInAllResponse struct {
	CheckedIn int64 `json:"checkedIn"`
}

// FromDomainParticipant конвертирует участника в DTO
func FromDomainParticipant(p *domain.Participant) *ParticipantResponse {
	if p == nil {
		return nil
	}

	return &ParticipantResponse{
		ID:         p.ID,
		SessionID:  p.SessionID,
		CustomerID: p.CustomerID,
		Name:       p.Name,
		Status:     string(p.Status),
		Paid:       p.Paid,
	}
}
