package generate_recurring_sessions

import (
	"time"

	generateRecurring "github.com/m04kA/SMC-GroupSessionService/internal/usecase/generate_recurring_sessions"
)

// GenerateRecurringRequest HTTP request model
type GenerateRecurringRequest struct {
	SessionTypeID int64   `json:"sessionTypeId"`
	Title         string  `json:"title"`
	Description   *string `json:"description,omitempty"`
	StartTime     string  `json:"startTime"` // RFC3339, первое занятие серии
	HostID        *int64  `json:"hostId,omitempty"`
	IsPublic      bool    `json:"isPublic"`
	Pattern       string  `json:"pattern"` // daily | weekly | biweekly | monthly
	Occurrences   int     `json:"occurrences"`
}

// GeneratedSessionResponse одно занятие серии
type GeneratedSessionResponse struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	MaxParticipants int    `json:"maxParticipants"`
	Status          string `json:"status"`
}

// GenerateRecurringResponse HTTP response model
type GenerateRecurringResponse struct {
	Sessions []GeneratedSessionResponse `json:"sessions"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateRecurringRequest) ToUseCaseRequest(tenantID int64) (*generateRecurring.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &generateRecurring.Request{
		TenantID:      tenantID,
		SessionTypeID: r.SessionTypeID,
		Title:         r.Title,
		Description:   r.Description,
		StartTime:     startTime,
		HostID:        r.HostID,
		IsPublic:      r.IsPublic,
		Pattern:       r.Pattern,
		Occurrences:   r.Occurrences,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateRecurring.Response) *GenerateRecurringResponse {
	out := &GenerateRecurringResponse{
		Sessions: make([]GeneratedSessionResponse, 0, len(resp.Sessions)),
	}

	for _, s := range resp.Sessions {
		out.Sessions = append(out.Sessions, GeneratedSessionResponse{
			ID:              s.ID,
			Title:           s.Title,
			StartTime:       s.StartTime.Format(time.RFC3339),
			EndTime:         s.EndTime.Format(time.RFC3339),
			MaxParticipants: s.MaxParticipants,
			Status:          s.Status,
		})
	}

	return out
}
