package list_sessions

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GroupSessionService/internal/api/handlers"
	"github.com/m04kA/SMC-GroupSessionService/internal/api/middleware"
	"github.com/m04kA/SMC-GroupSessionService/internal/service/schedule"
)

const (
	msgMissingTenantID = "отсутствует ID тенанта"
	msgInvalidFilter   = "некорректные параметры фильтра"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sessions?typeId=&status=&startDate=&endDate=&hostId=&publicOnly=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /sessions - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	req, err := parseQuery(r.URL.Query(), tenantID)
	if err != nil {
		h.logger.Warn("GET /sessions - Invalid filter: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.ListSessions(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /sessions - Invalid filter: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /sessions - Failed to list sessions: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sessions - Sessions listed successfully: tenant_id=%d, count=%d", tenantID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, result)
}
