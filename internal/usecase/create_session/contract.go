package create_session

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/internal/integrations/staffservice"
)

// SessionTypeRepository интерфейс репозитория типов занятий
type SessionTypeRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.SessionType, error)
}

// SessionRepository интерфейс репозитория занятий
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetEmployee(ctx context.Context, tenantID, employeeID int64) (*staffservice.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
