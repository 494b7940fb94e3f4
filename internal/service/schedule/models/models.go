package models

import (
	"time"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
)

// Request модели

// UpdateSessionRequest запрос на частичное обновление занятия
// nil поля не изменяются
type UpdateSessionRequest struct {
	TenantID  int64
	SessionID int64

	Title           *string
	Description     *string
	StartTime       *time.Time
	HostID          *int64
	ClearHost       bool
	MaxParticipants *int
}

// ListSessionsRequest запрос на получение списка занятий с фильтрами
type ListSessionsRequest struct {
	TenantID      int64
	SessionTypeID *int64
	StartDate     *time.Time
	EndDate       *time.Time
	Status        *string
	HostID        *int64
	PublicOnly    bool
}

// Response модели

// SessionResponse ответ с данными занятия
type SessionResponse struct {
	ID                  int64      `json:"id"`
	SessionTypeID       int64      `json:"sessionTypeId"`
	Title               string     `json:"title"`
	Description         *string    `json:"description,omitempty"`
	StartTime           time.Time  `json:"startTime"`
	EndTime             time.Time  `json:"endTime"`
	MaxParticipants     int        `json:"maxParticipants"`
	CurrentParticipants int        `json:"currentParticipants"`
	Status              string     `json:"status"`
	HostID              *int64     `json:"hostId,omitempty"`
	IsPublic            bool       `json:"isPublic"`
	PricePerPerson      float64    `json:"pricePerPerson"`
	CancelledAt         *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// SessionListResponse ответ со списком занятий
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// ParticipantResponse ответ с данными участника занятия
type ParticipantResponse struct {
	ID         int64   `json:"id"`
	CustomerID *int64  `json:"customerId,omitempty"`
	Name       string  `json:"name"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Status     string  `json:"status"`
	Paid       bool    `json:"paid"`
}

// SessionDetailResponse занятие вместе со списком участников
type SessionDetailResponse struct {
	Session      SessionResponse       `json:"session"`
	Participants []ParticipantResponse `json:"participants"`
}

// WaitlistEntryResponse запись листа ожидания
type WaitlistEntryResponse struct {
	ID         int64     `json:"id"`
	CustomerID *int64    `json:"customerId,omitempty"`
	Name       string    `json:"name"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}

// WaitlistResponse ответ со списком ожидающих
type WaitlistResponse struct {
	Entries []WaitlistEntryResponse `json:"entries"`
}

// Методы конвертации

// ToFilter конвертирует запрос списка в доменный фильтр
func (r *ListSessionsRequest) ToFilter() domain.SessionFilter {
	filter := domain.SessionFilter{
		TenantID:      r.TenantID,
		SessionTypeID: r.SessionTypeID,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		HostID:        r.HostID,
		PublicOnly:    r.PublicOnly,
	}

	if r.Status != nil {
		status := domain.SessionStatus(*r.Status)
		filter.Status = &status
	}

	return filter
}

// FromDomainSession конвертирует доменную модель занятия в DTO
func FromDomainSession(s *domain.Session) *SessionResponse {
	if s == nil {
		return nil
	}

	return &SessionResponse{
		ID:                  s.ID,
		SessionTypeID:       s.SessionTypeID,
		Title:               s.Title,
		Description:         s.Description,
		StartTime:           s.StartTime,
		EndTime:             s.EndTime,
		MaxParticipants:     s.MaxParticipants,
		CurrentParticipants: s.CurrentParticipants,
		Status:              string(s.Status),
		HostID:              s.HostID,
		IsPublic:            s.IsPublic,
		PricePerPerson:      s.PricePerPerson,
		CancelledAt:         s.CancelledAt,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

// FromDomainSessionList конвертирует список занятий в DTO
func FromDomainSessionList(sessions []*domain.Session) *SessionListResponse {
	resp := &SessionListResponse{
		Sessions: make([]SessionResponse, 0, len(sessions)),
	}

	for _, s := range sessions {
		if sessionResp := FromDomainSession(s); sessionResp != nil {
			resp.Sessions = append(resp.Sessions, *sessionResp)
		}
	}

	return resp
}

// FromDomainParticipant конвертирует участника в DTO
func FromDomainParticipant(p *domain.Participant) *ParticipantResponse {
	if p == nil {
		return nil
	}

	return &ParticipantResponse{
		ID:         p.ID,
		CustomerID: p.CustomerID,
		Name:       p.Name,
		Email:      p.Email,
		Phone:      p.Phone,
		Status:     string(p.Status),
		Paid:       p.Paid,
	}
}

// FromDomainWaitlist конвертирует лист ожидания в DTO
func FromDomainWaitlist(entries []*domain.WaitlistEntry) *WaitlistResponse {
	resp := &WaitlistResponse{
		Entries: make([]WaitlistEntryResponse, 0, len(entries)),
	}

	for _, e := range entries {
		resp.Entries = append(resp.Entries, WaitlistEntryResponse{
			ID:         e.ID,
			CustomerID: e.CustomerID,
			Name:       e.Name,
			Email:      e.Email,
			Phone:      e.Phone,
			Position:   e.Position,
			CreatedAt:  e.CreatedAt,
		})
	}

	return resp
}
