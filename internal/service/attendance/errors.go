package attendance

import "errors"

var (
	// ErrSessionNotFound возвращается, когда занятие не найдено
	ErrSessionNotFound = errors.New("attendance: session not found")

	// ErrParticipantNotFound возвращается, когда участник не найден
	ErrParticipantNotFound = errors.New("attendance: participant not found")

	// ErrSessionCancelled возвращается при попытке отметить посещаемость
	// отмененного занятия
	ErrSessionCancelled = errors.New("attendance: session is cancelled")

	// ErrAttendanceConflict возвращается, когда посещаемость участника
	// уже зафиксирована в противоположном статусе
	ErrAttendanceConflict = errors.New("attendance: participant attendance already finalized")

	// ErrConcurrentUpdate возвращается, когда транзакция не прошла из-за
	// конкурентного изменения занятия
	ErrConcurrentUpdate = errors.New("attendance: concurrent session update")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("attendance: internal error")
)
