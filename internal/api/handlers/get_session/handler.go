package get_session

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroupSessionService/internal/api/handlers"
	"github.com/m04kA/SMC-GroupSessionService/internal/api/middleware"
	"github.com/m04kA/SMC-GroupSessionService/internal/service/schedule"
)

const (
	msgInvalidSessionID = "некорректный ID занятия"
	msgMissingTenantID  = "отсутствует ID тенанта"
	msgSessionNotFound  = "занятие не найдено"
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

// Handle GET /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /sessions/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	sessionID, err := strconv.ParseInt(mux.Vars(r)["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sessions/{id} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	result, err := h.service.GetSession(r.Context(), tenantID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrSessionNotFound):
			h.logger.Warn("GET /sessions/{id} - Session not found: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("GET /sessions/{id} - Failed to get session: tenant_id=%d, session_id=%d, error=%v",
				tenantID, sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sessions/{id} - Session retrieved successfully: tenant_id=%d, session_id=%d", tenantID, sessionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
