package promote_from_waitlist

import "errors"

var (
	// ErrSessionNotFound возвращается, когда занятие не найдено
	ErrSessionNotFound = errors.New("promote_from_waitlist: session not found")

	// ErrSessionFinished возвращается при продвижении в отмененное
	// или завершенное занятие
	ErrSessionFinished = errors.New("promote_from_waitlist: session is cancelled or completed")

	// ErrSessionFull возвращается, когда свободных мест нет
	// Проверка выполняется под блокировкой занятия
	ErrSessionFull = errors.New("promote_from_waitlist: session has no free seats")

	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("promote_from_waitlist: waitlist entry not found")

	// ErrWaitlistEmpty возвращается, когда лист ожидания занятия пуст
	ErrWaitlistEmpty = errors.New("promote_from_waitlist: waitlist is empty")

	// ErrConcurrentUpdate возвращается, когда продвижение не прошло из-за
	// конкурентного изменения занятия
	ErrConcurrentUpdate = errors.New("promote_from_waitlist: concurrent session update")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("promote_from_waitlist: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("promote_from_waitlist: internal error")
)
