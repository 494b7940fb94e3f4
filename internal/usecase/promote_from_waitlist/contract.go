package promote_from_waitlist

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
)

// SessionRepository интерфейс репозитория занятий
type SessionRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Session, error)
	UpdateEnrollment(ctx context.Context, tenantID, id int64, currentParticipants int, status domain.SessionStatus) error
}

// ParticipantRepository интерфейс репозитория участников
type ParticipantRepository interface {
	Create(ctx context.Context, p *domain.Participant) (*domain.Participant, error)
}

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	GetByID(ctx context.Context, tenantID, sessionID, id int64) (*domain.WaitlistEntry, error)
	GetFirst(ctx context.Context, tenantID, sessionID int64) (*domain.WaitlistEntry, error)
	Delete(ctx context.Context, tenantID, sessionID, id int64) error
	Renumber(ctx context.Context, tenantID, sessionID int64) error
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
