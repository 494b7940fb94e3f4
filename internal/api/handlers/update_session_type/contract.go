package update_session_type

import (
	"context"

	"github.com/m04kA/SMC-GroupSessionService/internal/service/catalog/models"
)

type CatalogService interface {
	UpdateType(ctx context.Context, req *models.UpdateTypeRequest) (*models.TypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
