package remove_participant

import "errors"

var (
	// ErrSessionNotFound возвращается, когда занятие не найдено
	ErrSessionNotFound = errors.New("remove_participant: session not found")

	// ErrParticipantNotFound возвращается, когда участник не найден
	ErrParticipantNotFound = errors.New("remove_participant: participant not found")

	// ErrSessionFinished возвращается при изменении состава отмененного
	// или завершенного занятия
	ErrSessionFinished = errors.New("remove_participant: session is cancelled or completed")

	// ErrConcurrentUpdate возвращается, когда удаление не прошло из-за
	// конкурентного изменения занятия
	ErrConcurrentUpdate = errors.New("remove_participant: concurrent session update")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("remove_participant: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("remove_participant: internal error")
)
