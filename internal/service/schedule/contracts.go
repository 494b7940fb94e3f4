package schedule

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/internal/integrations/staffservice"
)

// SessionRepository интерфейс репозитория занятий
type SessionRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Session, error)
	List(ctx context.Context, filter domain.SessionFilter) ([]*domain.Session, error)
	Update(ctx context.Context, s *domain.Session) error
	Cancel(ctx context.Context, tenantID, id int64) error
	SetVisibility(ctx context.Context, tenantID, id int64, isPublic bool) error
}

// ParticipantRepository интерфейс репозитория участников
type ParticipantRepository interface {
	ListBySession(ctx context.Context, tenantID, sessionID int64) ([]*domain.Participant, error)
}

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	ListBySession(ctx context.Context, tenantID, sessionID int64) ([]*domain.WaitlistEntry, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetEmployee(ctx context.Context, tenantID, employeeID int64) (*staffservice.Employee, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, queue string, event interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
