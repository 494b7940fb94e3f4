package catalog

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
)

// SessionTypeRepository интерфейс репозитория типов занятий
type SessionTypeRepository interface {
	Create(ctx context.Context, sessionType *domain.SessionType) (*domain.SessionType, error)
	GetByID(ctx context.Context, tenantID, id int64) (*domain.SessionType, error)
	List(ctx context.Context, tenantID int64, activeOnly bool) ([]*domain.SessionType, error)
	Update(ctx context.Context, sessionType *domain.SessionType) error
	Delete(ctx context.Context, tenantID, id int64) error
}

// SessionRepository интерфейс репозитория занятий
// Используется для проверки ссылочной целостности при удалении типа
type SessionRepository interface {
	CountActiveByTypeID(ctx context.Context, tenantID, typeID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
