package generate_recurring_sessions

import (
	"time"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
)

// Request модель запроса на генерацию серии повторяющихся занятий
type Request struct {
	TenantID      int64
	SessionTypeID int64
	Title         string
	Description   *string
	StartTime     time.Time
	HostID        *int64
	IsPublic      bool

	Pattern     string // daily | weekly | biweekly | monthly
	Occurrences int
}

// GeneratedSession одно занятие созданной серии
type GeneratedSession struct {
	ID              int64
	Title           string
	StartTime       time.Time
	EndTime         time.Time
	MaxParticipants int
	Status          string
}

// Response модель ответа со всеми созданными занятиями
// Серия создается целиком или не создается вовсе
type Response struct {
	Sessions []GeneratedSession
}

// fromDomainList конвертирует созданные занятия в ответ
func fromDomainList(sessions []*domain.Session) *Response {
	resp := &Response{
		Sessions: make([]GeneratedSession, 0, len(sessions)),
	}

	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, GeneratedSession{
			ID:              s.ID,
			Title:           s.Title,
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			MaxParticipants: s.MaxParticipants,
			Status:          string(s.Status),
		})
	}

	return resp
}
