package create_session

import (
	"time"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
)

// Request модель запроса на создание занятия
type Request struct {
	TenantID      int64
	SessionTypeID int64
	Title         string
	Description   *string
	StartTime     time.Time
	HostID        *int64
	IsPublic      bool
}

// Response модель ответа с созданным занятием
// Вместимость и цена копируются из типа на момент создания
type Response struct {
	ID                  int64
	SessionTypeID       int64
	Title               string
	Description         *string
	StartTime           time.Time
	EndTime             time.Time
	MaxParticipants     int
	CurrentParticipants int
	Status              string
	HostID              *int64
	IsPublic            bool
	PricePerPerson      float64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// fromDomain конвертирует доменную модель занятия в ответ
func fromDomain(s *domain.Session) *Response {
	return &Response{
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
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}
