package get_session_type

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/service/catalog/models"
)

type CatalogService interface {
	GetType(ctx context.Context, tenantID, typeID int64) (*models.TypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
