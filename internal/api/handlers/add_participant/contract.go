package add_participant

import (
	"context"

	addParticipant "github.com/m04kA/SMC-GroupSessionService/internal/usecase/add_participant"
)

type AddParticipantUseCase interface {
	Execute(ctx context.Context, req *addParticipant.Request) (*addParticipant.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
