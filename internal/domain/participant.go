package domain

import "time"

// ParticipantStatus статус участника в рамках одного занятия
type ParticipantStatus string

const (
	ParticipantStatusConfirmed ParticipantStatus = "confirmed"
	ParticipantStatusCheckedIn ParticipantStatus = "checked_in"
	ParticipantStatusNoShow    ParticipantStatus = "no_show"
)

// Participant участник занятия с подтвержденным местом
type Participant struct {
	ID        int64
	TenantID  int64
	SessionID int64

	// Identity: либо ссылка на клиента из справочника, либо walk-in с контактами
	CustomerID *int64
	Name       string
	Email      *string
	Phone      *string

	Status ParticipantStatus
	Paid   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFinalized возвращает true, если посещаемость участника уже зафиксирована
// checked_in и no_show - терминальные статусы для занятия
func (p *Participant) IsFinalized() bool {
	return p.Status == ParticipantStatusCheckedIn || p.Status == ParticipantStatusNoShow
}

// Identity личность участника или записи в листе ожидания
// Либо CustomerID (клиент из справочника), либо Name с контактами (walk-in)
type Identity struct {
	CustomerID *int64
	Name       string
	Email      *string
	Phone      *string
}

// IsWalkIn возвращает true для участника без ссылки на клиента
func (i *Identity) IsWalkIn() bool {
	return i.CustomerID == nil
}

// Validate проверяет, что личность задана корректно
func (i *Identity) Validate() error {
	if i.CustomerID == nil && i.Name == "" {
		return ErrMissingIdentity
	}
	if i.CustomerID != nil && *i.CustomerID <= 0 {
		return ErrMissingIdentity
	}
	return nil
}
