package delete_session_type

import "context"

type CatalogService interface {
	DeleteType(ctx context.Context, tenantID, typeID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
