package cancel_session

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
	msgSessionFinished  = "занятие уже отменено или завершено"
	msgConcurrentUpdate = "занятие изменяется параллельно, повторите запрос"
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

// Handle PATCH /api/v1/sessions/{sessionId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /sessions/{id}/cancel - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	sessionID, err := strconv.ParseInt(mux.Vars(r)["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/cancel - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	result, err := h.service.CancelSession(r.Context(), tenantID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Session not found: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, schedule.ErrSessionFinished):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Session finished: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondConflict(w, msgSessionFinished)

		case errors.Is(err, schedule.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /sessions/{id}/cancel - Concurrent update: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("PATCH /sessions/{id}/cancel - Failed to cancel session: tenant_id=%d, session_id=%d, error=%v",
				tenantID, sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/cancel - Session cancelled successfully: tenant_id=%d, session_id=%d",
		tenantID, sessionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
