package remove_participant

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroupSessionService/internal/api/handlers"
	"github.com/m04kA/SMC-GroupSessionService/internal/api/middleware"
	removeParticipant "github.com/m04kA/SMC-GroupSessionService/internal/usecase/remove_participant"
)

const (
	msgInvalidSessionID     = "некорректный ID занятия"
	msgInvalidParticipantID = "некорректный ID участника"
	msgMissingTenantID      = "отсутствует ID тенанта"
	msgSessionNotFound      = "занятие не найдено"
	msgParticipantNotFound  = "участник не найден"
	msgSessionFinished      = "занятие отменено или завершено"
	msgConcurrentUpdate     = "занятие изменяется параллельно, повторите запрос"
)

type Handler struct {
	useCase RemoveParticipantUseCase
	logger  Logger
}

func NewHandler(useCase RemoveParticipantUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/sessions/{sessionId}/participants/{participantId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /sessions/{id}/participants/{pid} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	vars := mux.Vars(r)

	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /sessions/{id}/participants/{pid} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	participantID, err := strconv.ParseInt(vars["participantId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /sessions/{id}/participants/{pid} - Invalid participant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParticipantID)
		return
	}

	err = h.useCase.Execute(r.Context(), &removeParticipant.Request{
		TenantID:      tenantID,
		SessionID:     sessionID,
		ParticipantID: participantID,
	})
	if err != nil {
		switch {
		case errors.Is(err, removeParticipant.ErrSessionNotFound):
			h.logger.Warn("DELETE /sessions/{id}/participants/{pid} - Session not found: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, removeParticipant.ErrParticipantNotFound):
			h.logger.Warn("DELETE /sessions/{id}/participants/{pid} - Participant not found: tenant_id=%d, session_id=%d, participant_id=%d",
				tenantID, sessionID, participantID)
			handlers.RespondNotFound(w, msgParticipantNotFound)

		case errors.Is(err, removeParticipant.ErrSessionFinished):
			h.logger.Warn("DELETE /sessions/{id}/participants/{pid} - Session finished: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondConflict(w, msgSessionFinished)

		case errors.Is(err, removeParticipant.ErrConcurrentUpdate):
			h.logger.Warn("DELETE /sessions/{id}/participants/{pid} - Concurrent update: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("DELETE /sessions/{id}/participants/{pid} - Failed to remove participant: tenant_id=%d, session_id=%d, participant_id=%d, error=%v",
				tenantID, sessionID, participantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /sessions/{id}/participants/{pid} - Participant removed: tenant_id=%d, session_id=%d, participant_id=%d",
		tenantID, sessionID, participantID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
