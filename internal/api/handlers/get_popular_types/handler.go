package get_popular_types

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GroupSessionService/internal/api/handlers"
	"github.com/m04kA/SMC-GroupSessionService/internal/api/middleware"
	"github.com/m04kA/SMC-GroupSessionService/internal/service/stats"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidPeriod   = "некорректный период отчета"
)

type Handler struct {
	service StatsService
	logger  Logger
}

func NewHandler(service StatsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stats/popular-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /stats/popular-types - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	req, err := parseQuery(r.URL.Query(), tenantID)
	if err != nil {
		h.logger.Warn("GET /stats/popular-types - Invalid query: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.PopularTypes(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, stats.ErrInvalidInput):
			h.logger.Warn("GET /stats/popular-types - Invalid period: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /stats/popular-types - Failed to build report: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stats/popular-types - Report built: tenant_id=%d, types=%d", tenantID, len(result.Types))
	handlers.RespondJSON(w, http.StatusOK, result)
}
