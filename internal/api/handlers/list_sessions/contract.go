package list_sessions

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListSessions(ctx context.Context, req *models.ListSessionsRequest) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
