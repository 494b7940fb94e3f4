package list_session_types

import (
	"net/http"

	"github.com/m04kA/SMC-GroupSessionService/internal/api/handlers"
	"github.com/m04kA/SMC-GroupSessionService/internal/api/middleware"
)

const msgMissingTenantID = "отсутствует ID тенанта"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/session-types?activeOnly=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /session-types - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	result, err := h.service.ListTypes(r.Context(), tenantID, activeOnly)
	if err != nil {
		h.logger.Error("GET /session-types - Failed to list types: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /session-types - Types listed successfully: tenant_id=%d, count=%d",
		tenantID, len(result.SessionTypes))
	handlers.RespondJSON(w, http.StatusOK, result)
}
