package domain

import "time"

// WaitlistEntry запись в листе ожидания занятия
// Инвариант: позиции записей одного занятия образуют непрерывную
// возрастающую последовательность 1..N без пропусков и дубликатов
type WaitlistEntry struct {
	ID        int64
	TenantID  int64
	SessionID int64

	CustomerID *int64
	Name       string
	Email      *string
	Phone      *string

	Position int // 1-based позиция в очереди

	CreatedAt time.Time
}

// ToParticipant конвертирует запись листа ожидания в подтвержденного участника
// Используется при продвижении из очереди на освободившееся место
func (e *WaitlistEntry) ToParticipant() *Participant {
	return &Participant{
		TenantID:   e.TenantID,
		SessionID:  e.SessionID,
		CustomerID: e.CustomerID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Status:     ParticipantStatusConfirmed,
		Paid:       false,
	}
}
