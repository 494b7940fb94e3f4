package generate_recurring_sessions

import (
	"context"

	generateRecurring "github.com/m04kA/SMC-GroupSessionService/internal/usecase/generate_recurring_sessions"
)

type GenerateRecurringUseCase interface {
	Execute(ctx context.Context, req *generateRecurring.Request) (*generateRecurring.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
