package mark_participants_paid

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
)

// SessionRepository интерфейс репозитория занятий
type SessionRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Session, error)
}

// ParticipantRepository интерфейс репозитория участников
type ParticipantRepository interface {
	MarkPaid(ctx context.Context, tenantID, sessionID int64, ids []int64) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
