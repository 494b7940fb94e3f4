package stats

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
)

// StatsRepository интерфейс репозитория агрегированной статистики
type StatsRepository interface {
	Summary(ctx context.Context, filter domain.StatsFilter) (*domain.SessionsSummary, error)
	PopularTypes(ctx context.Context, filter domain.StatsFilter) ([]*domain.TypePopularity, error)
}

// Cache интерфейс кеша отчетов
// Реализация поверх Redis, при выключенном кеше - no-op
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
