package schedule

import "errors"

var (
	// ErrSessionNotFound возвращается, когда занятие не найдено
	ErrSessionNotFound = errors.New("schedule: session not found")

	// ErrSessionFinished возвращается при попытке изменить занятие
	// в терминальном статусе (cancelled / completed)
	ErrSessionFinished = errors.New("schedule: session is cancelled or completed")

	// ErrCapacityBelowEnrolled возвращается при попытке уменьшить вместимость
	// ниже текущего числа участников
	ErrCapacityBelowEnrolled = errors.New("schedule: max participants is below current participants")

	// ErrHostNotFound возвращается, когда указанный ведущий не найден в StaffService
	ErrHostNotFound = errors.New("schedule: host employee not found")

	// ErrConcurrentUpdate возвращается, когда транзакция не прошла из-за
	// конкурентного изменения занятия
	ErrConcurrentUpdate = errors.New("schedule: concurrent session update")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
