package check_in_all

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/service/attendance/models"
)

type AttendanceService interface {
	CheckInAll(ctx context.Context, tenantID, sessionID int64) (*models.CheckInAllResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
