package generate_recurring_sessions

import "errors"

var (
	// ErrTypeNotFound возвращается, когда тип занятия не найден
	ErrTypeNotFound = errors.New("generate_recurring_sessions: session type not found")

	// ErrTypeInactive возвращается при генерации занятий деактивированного типа
	ErrTypeInactive = errors.New("generate_recurring_sessions: session type is inactive")

	// ErrHostNotFound возвращается, когда ведущий не найден в StaffService
	ErrHostNotFound = errors.New("generate_recurring_sessions: host employee not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_recurring_sessions: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_recurring_sessions: internal error")
)
