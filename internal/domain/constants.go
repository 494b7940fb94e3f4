package domain

import "errors"

// Business validation constants
const (
	MinTypeParticipants       = 1
	MinSessionDurationMinutes = 15
	MaxSessionDurationMinutes = 1440 // сутки
	MaxTitleLength            = 200
	MaxDescriptionLength      = 2000
	MaxRecurrenceOccurrences  = 52 // год еженедельных занятий
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Ошибки валидации доменных моделей
var (
	ErrEmptyTypeName            = errors.New("domain: session type name is required")
	ErrInvalidMinParticipants   = errors.New("domain: min participants must be at least 1")
	ErrInvalidMaxParticipants   = errors.New("domain: max participants must be >= min participants")
	ErrInvalidDuration          = errors.New("domain: duration must be between 15 minutes and 24 hours")
	ErrNegativePrice            = errors.New("domain: price per person must not be negative")
	ErrMissingIdentity          = errors.New("domain: participant identity requires customer reference or name")
	ErrInvalidRecurrencePattern = errors.New("domain: unknown recurrence pattern")
)

// TerminalSessionStatuses статусы, в которых занятие больше не изменяется
var TerminalSessionStatuses = []SessionStatus{
	SessionStatusCancelled,
	SessionStatusCompleted,
}

// ActiveSessionStatuses статусы занятий, открытых для изменений
var ActiveSessionStatuses = []SessionStatus{
	SessionStatusOpen,
	SessionStatusFull,
}
