package add_participant

import "errors"

var (
	// ErrSessionNotFound возвращается, когда занятие не найдено
	ErrSessionNotFound = errors.New("add_participant: session not found")

	// ErrSessionFinished возвращается при записи на отмененное или завершенное занятие
	ErrSessionFinished = errors.New("add_participant: session is cancelled or completed")

	// ErrCustomerNotFound возвращается, когда клиент не найден в справочнике
	ErrCustomerNotFound = errors.New("add_participant: customer not found")

	// ErrConcurrentUpdate возвращается, когда запись не прошла из-за
	// конкурентного изменения занятия
	ErrConcurrentUpdate = errors.New("add_participant: concurrent session update")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("add_participant: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("add_participant: internal error")
)
