package create_session

import "errors"

var (
	// ErrTypeNotFound возвращается, когда тип занятия не найден
	ErrTypeNotFound = errors.New("create_session: session type not found")

	// ErrTypeInactive возвращается при создании занятия деактивированного типа
	ErrTypeInactive = errors.New("create_session: session type is inactive")

	// ErrHostNotFound возвращается, когда ведущий не найден в StaffService
	ErrHostNotFound = errors.New("create_session: host employee not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_session: internal error")
)
