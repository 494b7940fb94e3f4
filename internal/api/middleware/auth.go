// Package middleware содержит HTTP middleware: тенантную аутентификацию
// и сбор метрик запросов
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-GroupSessionService/internal/api/handlers"
)

// HeaderTenantID заголовок с идентификатором тенанта
const HeaderTenantID = "X-Tenant-ID"

const msgTenantRequired = "требуется заголовок X-Tenant-ID"

type contextKey string

const tenantIDKey contextKey = "tenantID"

// Auth проверяет наличие корректного X-Tenant-ID и кладет его в контекст
// Все данные сервиса изолированы по тенантам
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderTenantID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgTenantRequired)
			return
		}

		tenantID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || tenantID <= 0 {
			handlers.RespondUnauthorized(w, msgTenantRequired)
			return
		}

		ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID извлекает идентификатор тенанта из контекста запроса
func GetTenantID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(tenantIDKey).(int64)
	return id, ok
}
