package mark_participants_paid

import (
	"context"

	markPaid "github.com/m04kA/SMC-GroupSessionService/internal/usecase/mark_participants_paid"
)

type MarkParticipantsPaidUseCase interface {
	Execute(ctx context.Context, req *markPaid.Request) (*markPaid.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
