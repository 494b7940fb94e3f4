package get_session

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetSession(ctx context.Context, tenantID, sessionID int64) (*models.SessionDetailResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
