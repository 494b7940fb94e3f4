package create_session

import (
	"time"

	createSession "github.com/m04kA/SMC-GroupSessionService/internal/usecase/create_session"
)

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	SessionTypeID int64   `json:"sessionTypeId"`
	Title         string  `json:"title"`
	Description   *string `json:"description,omitempty"`
	StartTime     string  `json:"startTime"` // RFC3339
	HostID        *int64  `json:"hostId,omitempty"`
	IsPublic      bool    `json:"isPublic"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID                  int64   `json:"id"`
	SessionTypeID       int64   `json:"sessionTypeId"`
	Title               string  `json:"title"`
	Description         *string `json:"description,omitempty"`
	StartTime           string  `json:"startTime"`
	EndTime             string  `json:"endTime"`
	MaxParticipants     int     `json:"maxParticipants"`
	CurrentParticipants int     `json:"currentParticipants"`
	Status              string  `json:"status"`
	HostID              *int64  `json:"hostId,omitempty"`
	IsPublic            bool    `json:"isPublic"`
	PricePerPerson      float64 `json:"pricePerPerson"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSessionRequest) ToUseCaseRequest(tenantID int64) (*createSession.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createSession.Request{
		TenantID:      tenantID,
		SessionTypeID: r.SessionTypeID,
		Title:         r.Title,
		Description:   r.Description,
		StartTime:     startTime,
		HostID:        r.HostID,
		IsPublic:      r.IsPublic,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSession.Response) *SessionResponse {
	return &SessionResponse{
		ID:                  resp.ID,
		SessionTypeID:       resp.SessionTypeID,
		Title:               resp.Title,
		Description:         resp.Description,
		StartTime:           resp.StartTime.Format(time.RFC3339),
		EndTime:             resp.EndTime.Format(time.RFC3339),
		MaxParticipants:     resp.MaxParticipants,
		CurrentParticipants: resp.CurrentParticipants,
		Status:              resp.Status,
		HostID:              resp.HostID,
		IsPublic:            resp.IsPublic,
		PricePerPerson:      resp.PricePerPerson,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}
