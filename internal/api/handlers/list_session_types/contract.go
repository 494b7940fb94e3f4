package list_session_types

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/service/catalog/models"
)

type CatalogService interface {
	ListTypes(ctx context.Context, tenantID int64, activeOnly bool) (*models.TypeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
