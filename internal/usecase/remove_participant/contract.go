package remove_participant

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
	GetByID(ctx context.Context, tenantID, sessionID, id int64) (*domain.Participant, error)
	Delete(ctx context.Context, tenantID, sessionID, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
