package domain

import "time"

// SessionStatus статус конкретного занятия
type SessionStatus string

const (
	SessionStatusOpen      SessionStatus = "open"
	SessionStatusFull      SessionStatus = "full"
	SessionStatusCancelled SessionStatus = "cancelled"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session конкретное занятие в расписании
// Инвариант: 0 <= CurrentParticipants <= MaxParticipants
type Session struct {
	ID            int64
	TenantID      int64
	SessionTypeID int64
	Title         string
	Description   *string
	StartTime     time.Time
	EndTime       time.Time

	MaxParticipants     int
	CurrentParticipants int

	Status         SessionStatus
	HostID         *int64
	IsPublic       bool
	PricePerPerson float64 // копия цены из SessionType на момент создания

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTerminal возвращает true, если занятие в терминальном статусе
// Терминальные занятия нельзя изменять
func (s *Session) IsTerminal() bool {
	for _, status := range TerminalSessionStatuses {
		if s.Status == status {
			return true
		}
	}
	return false
}

// HasFreeSeat возвращает true, если в занятии есть свободное место
func (s *Session) HasFreeSeat() bool {
	return s.CurrentParticipants < s.MaxParticipants
}

// Occupancy возвращает заполненность занятия (0.0 - 1.0)
func (s *Session) Occupancy() float64 {
	if s.MaxParticipants == 0 {
		return 0
	}
	return float64(s.CurrentParticipants) / float64(s.MaxParticipants)
}

// StatusForCount возвращает статус занятия для указанного числа участников
func (s *Session) StatusForCount(count int) SessionStatus {
	if count >= s.MaxParticipants {
		return SessionStatusFull
	}
	return SessionStatusOpen
}

// SessionFilter фильтр для получения списка занятий
type SessionFilter struct {
	TenantID      int64          // Обязательный параметр
	SessionTypeID *int64         // Фильтр по типу занятия (опционально)
	StartDate     *time.Time     // Начало периода (опционально)
	EndDate       *time.Time     // Конец периода (опционально)
	Status        *SessionStatus // Фильтр по статусу (опционально)
	HostID        *int64         // Фильтр по ведущему (опционально)
	PublicOnly    bool           // Только публичные занятия
}

// SessionPatch частичное обновление занятия
// nil поля не изменяются
type SessionPatch struct {
	Title           *string
	Description     *string
	StartTime       *time.Time
	HostID          *int64
	ClearHost       bool // снять ведущего с занятия
	MaxParticipants *int
}
