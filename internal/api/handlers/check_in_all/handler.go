package check_in_all

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroupSessionService/internal/api/handlers"
	"github.com/m04kA/SMC-GroupSessionService/internal/api/middleware"
	"github.com/m04kA/SMC-GroupSessionService/internal/service/attendance"
)

const (
	msgInvalidSessionID = "некорректный ID занятия"
	msgMissingTenantID  = "отсутствует ID тенанта"
	msgSessionNotFound  = "занятие не найдено"
	msgSessionCancelled = "занятие отменено"
	msgConcurrentUpdate = "занятие изменяется параллельно, повторите запрос"
)

type Handler struct {
	service AttendanceService
	logger  Logger
}

func NewHandler(service AttendanceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/check-in-all
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/check-in-all - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	vars := mux.Vars(r)

	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/check-in-all - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	result, err := h.service.CheckInAll(r.Context(), tenantID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/check-in-all - Session not found: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, attendance.ErrSessionCancelled):
			h.logger.Warn("POST /sessions/{id}/check-in-all - Session cancelled: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondConflict(w, msgSessionCancelled)

		case errors.Is(err, attendance.ErrConcurrentUpdate):
			h.logger.Warn("POST /sessions/{id}/check-in-all - Concurrent update: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /sessions/{id}/check-in-all - Failed to check in participants: tenant_id=%d, session_id=%d, error=%v",
				tenantID, sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/check-in-all - Checked in participants: tenant_id=%d, session_id=%d, checked_in=%d",
		tenantID, sessionID, result.CheckedIn)
	handlers.RespondJSON(w, http.StatusOK, result)
}
