package get_stats_summary

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/service/stats/models"
)

type StatsService interface {
	Summary(ctx context.Context, req *models.SummaryRequest) (*models.SummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
