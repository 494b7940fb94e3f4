package domain

import "time"

// SessionType переиспользуемое описание группового занятия
// (мастер-класс, групповая тренировка, воркшоп)
type SessionType struct {
	ID              int64
	TenantID        int64
	Name            string
	Description     *string
	MinParticipants int
	MaxParticipants int
	PricePerPerson  float64
	DurationMinutes int
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration возвращает длительность занятия как time.Duration
func (t *SessionType) Duration() time.Duration {
	return time.Duration(t.DurationMinutes) * time.Minute
}

// Validate проверяет бизнес-ограничения описания занятия
func (t *SessionType) Validate() error {
	if t.Name == "" {
		return ErrEmptyTypeName
	}
	if t.MinParticipants < MinTypeParticipants {
		return ErrInvalidMinParticipants
	}
	if t.MaxParticipants < t.MinParticipants {
		return ErrInvalidMaxParticipants
	}
	if t.DurationMinutes < MinSessionDurationMinutes || t.DurationMinutes > MaxSessionDurationMinutes {
		return ErrInvalidDuration
	}
	if t.PricePerPerson < 0 {
		return ErrNegativePrice
	}
	return nil
}
