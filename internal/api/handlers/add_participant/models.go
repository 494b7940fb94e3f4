package add_participant

import (
	"time"

	addParticipant "github.com/m04kA/SMC-GroupSessionService/internal/usecase/add_participant"
)

// AddParticipantRequest HTTP request model
// Либо customerId, либо name с контактами (walk-in)
type AddParticipantRequest struct {
	CustomerID *int64  `json:"customerId,omitempty"`
	Name       string  `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Paid       bool    `json:"paid,omitempty"`
}

// ParticipantResponse подтвержденный участник
type ParticipantResponse struct {
	ID         int64   `json:"id"`
	SessionID  int64   `json:"sessionId"`
	CustomerID *int64  `json:"customerId,omitempty"`
	Name       string  `json:"name"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Status     string  `json:"status"`
	Paid       bool    `json:"paid"`
	CreatedAt  string  `json:"createdAt"`
}

// WaitlistEntryResponse запись листа ожидания
type WaitlistEntryResponse struct {
	ID         int64   `json:"id"`
	SessionID  int64   `json:"sessionId"`
	CustomerID *int64  `json:"customerId,omitempty"`
	Name       string  `json:"name"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Position   int     `json:"position"`
	CreatedAt  string  `json:"createdAt"`
}

// AddParticipantResponse HTTP response model
// enrolled=false означает попадание в лист ожидания
type AddParticipantResponse struct {
	Enrolled      bool                   `json:"enrolled"`
	Participant   *ParticipantResponse   `json:"participant,omitempty"`
	WaitlistEntry *WaitlistEntryResponse `json:"waitlistEntry,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AddParticipantRequest) ToUseCaseRequest(tenantID, sessionID int64) *addParticipant.Request {
	return &addParticipant.Request{
		TenantID:   tenantID,
		SessionID:  sessionID,
		CustomerID: r.CustomerID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Paid:       r.Paid,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *addParticipant.Response) *AddParticipantResponse {
	out := &AddParticipantResponse{Enrolled: resp.Enrolled}

	if resp.Participant != nil {
		out.Participant = &ParticipantResponse{
			ID:         resp.Participant.ID,
			SessionID:  resp.Participant.SessionID,
			CustomerID: resp.Participant.CustomerID,
			Name:       resp.Participant.Name,
			Email:      resp.Participant.Email,
			Phone:      resp.Participant.Phone,
			Status:     resp.Participant.Status,
			Paid:       resp.Participant.Paid,
			CreatedAt:  resp.Participant.CreatedAt.Format(time.RFC3339),
		}
	}

	if resp.WaitlistEntry != nil {
		out.WaitlistEntry = &WaitlistEntryResponse{
			ID:         resp.WaitlistEntry.ID,
			SessionID:  resp.WaitlistEntry.SessionID,
			CustomerID: resp.WaitlistEntry.CustomerID,
			Name:       resp.WaitlistEntry.Name,
			Email:      resp.WaitlistEntry.Email,
			Phone:      resp.WaitlistEntry.Phone,
			Position:   resp.WaitlistEntry.Position,
			CreatedAt:  resp.WaitlistEntry.CreatedAt.Format(time.RFC3339),
		}
	}

	return out
}
