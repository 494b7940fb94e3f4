package get_waitlist

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListWaitlist(ctx context.Context, tenantID, sessionID int64) (*models.WaitlistResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
