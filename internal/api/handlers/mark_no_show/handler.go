package mark_no_show

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
	msgInvalidSessionID     = "некорректный ID занятия"
	msgInvalidParticipantID = "некорректный ID участника"
	msgMissingTenantID      = "отсутствует ID тенанта"
	msgSessionNotFound      = "занятие не найдено"
	msgParticipantNotFound  = "участник не найден"
	msgSessionCancelled     = "занятие отменено"
	msgAttendanceConflict   = "посещаемость участника уже зафиксирована"
	msgConcurrentUpdate     = "занятие изменяется параллельно, повторите запрос"
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

// Handle PATCH /api/v1/sessions/{sessionId}/participants/{participantId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PATCH .../no-show - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	vars := mux.Vars(r)

	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH .../no-show - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	participantID, err := strconv.ParseInt(vars["participantId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH .../no-show - Invalid participant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParticipantID)
		return
	}

	result, err := h.service.MarkNoShow(r.Context(), tenantID, sessionID, participantID)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrSessionNotFound):
			h.logger.Warn("PATCH .../no-show - Session not found: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, attendance.ErrParticipantNotFound):
			h.logger.Warn("PATCH .../no-show - Participant not found: tenant_id=%d, session_id=%d, participant_id=%d",
				tenantID, sessionID, participantID)
			handlers.RespondNotFound(w, msgParticipantNotFound)

		case errors.Is(err, attendance.ErrSessionCancelled):
			h.logger.Warn("PATCH .../no-show - Session cancelled: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondConflict(w, msgSessionCancelled)

		case errors.Is(err, attendance.ErrAttendanceConflict):
			h.logger.Warn("PATCH .../no-show - Attendance conflict: tenant_id=%d, session_id=%d, participant_id=%d",
				tenantID, sessionID, participantID)
			handlers.RespondConflict(w, msgAttendanceConflict)

		case errors.Is(err, attendance.ErrConcurrentUpdate):
			h.logger.Warn("PATCH .../no-show - Concurrent update: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("PATCH .../no-show - Failed to mark no-show: tenant_id=%d, session_id=%d, participant_id=%d, error=%v",
				tenantID, sessionID, participantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH .../no-show - Participant marked no-show: tenant_id=%d, session_id=%d, participant_id=%d",
		tenantID, sessionID, participantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
