package update_session

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSessionID   = "некорректный ID занятия"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgSessionNotFound    = "занятие не найдено"
	msgSessionFinished    = "занятие отменено или завершено"
	msgCapacityTooSmall   = "вместимость меньше текущего числа участников"
	msgHostNotFound       = "ведущий не найден"
	msgConcurrentUpdate   = "занятие изменяется параллельно, повторите запрос"
	msgInvalidSessionData = "некорректные данные занятия"
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

// Handle PUT /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PUT /sessions/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	sessionID, err := strconv.ParseInt(mux.Vars(r)["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /sessions/{id} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req UpdateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(tenantID, sessionID)
	if err != nil {
		h.logger.Warn("PUT /sessions/{id} - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.service.UpdateSession(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrSessionNotFound):
			h.logger.Warn("PUT /sessions/{id} - Session not found: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, schedule.ErrSessionFinished):
			h.logger.Warn("PUT /sessions/{id} - Session finished: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondConflict(w, msgSessionFinished)

		case errors.Is(err, schedule.ErrCapacityBelowEnrolled):
			h.logger.Warn("PUT /sessions/{id} - Capacity below enrolled: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondBadRequest(w, msgCapacityTooSmall)

		case errors.Is(err, schedule.ErrHostNotFound):
			h.logger.Warn("PUT /sessions/{id} - Host not found: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondNotFound(w, msgHostNotFound)

		case errors.Is(err, schedule.ErrConcurrentUpdate):
			h.logger.Warn("PUT /sessions/{id} - Concurrent update: tenant_id=%d, session_id=%d", tenantID, sessionID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /sessions/{id} - Invalid session data: tenant_id=%d, session_id=%d, error=%v",
				tenantID, sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidSessionData)

		default:
			h.logger.Error("PUT /sessions/{id} - Failed to update session: tenant_id=%d, session_id=%d, error=%v",
				tenantID, sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sessions/{id} - Session updated successfully: tenant_id=%d, session_id=%d", tenantID, sessionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
