package check_in

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/service/attendance/models"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, tenantID, sessionID, participantID int64) (*models.ParticipantResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
