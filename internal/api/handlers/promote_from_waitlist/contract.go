package promote_from_waitlist

import (
	"context"

	promote "github.com/m04kA/SMC-GroupSessionService/internal/usecase/promote_from_waitlist"
)

type PromoteFromWaitlistUseCase interface {
	Execute(ctx context.Context, req *promote.Request) (*promote.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
