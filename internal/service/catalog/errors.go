package catalog

import "errors"

var (
	// ErrTypeNotFound возвращается, когда тип занятия не найден
	ErrTypeNotFound = errors.New("session type not found")

	// ErrTypeInUse возвращается при попытке удалить тип,
	// на который ссылаются активные занятия
	ErrTypeInUse = errors.New("session type is referenced by active sessions")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog service: internal error")
)
