package get_popular_types

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/service/stats/models"
)

type StatsService interface {
	PopularTypes(ctx context.Context, req *models.SummaryRequest) (*models.PopularTypesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
