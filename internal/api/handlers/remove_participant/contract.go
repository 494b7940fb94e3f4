package remove_participant

import (
	"context"

	removeParticipant "github.com/m04kA/SMC-GroupSessionService/internal/usecase/remove_participant"
)

type RemoveParticipantUseCase interface {
	Execute(ctx context.Context, req *removeParticipant.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
