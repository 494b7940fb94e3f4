package promote_from_waitlist

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroupSessionService/internal/api/handlers"
	"github.com/m04kA/SMC-GroupSessionService/internal/api/middleware"
	promote "github.com/m04kA/SMC-GroupSessionService/internal/usecase/promote_from_waitlist"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSessionID   = "некорректный ID занятия"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgSessionNotFound    = "занятие не найдено"
	msgSessionFinished    = "занятие отменено или завершено"
	msgSessionFull        = "в занятии нет свободных мест"
	msgEntryNotFound      = "запись листа ожидания не найдена"
	msgWaitlistEmpty      = "лист ожидания пуст"
	msgConcurrentUpdate   = "занятие изменяется параллельно, повторите запрос"
)

type Handler struct {
	useCase PromoteFromWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase PromoteFromWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/waitlist/promote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/waitlist/promote - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	sessionID, err := strconv.ParseInt(mux.Vars(r)["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/waitlist/promote - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	// Тело опционально: без него продвигается первый в очереди
	var req PromoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /sessions/{id}/waitlist/promote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &promote.Request{
		TenantID:  tenantID,
		SessionID: sessionID,
		EntryID:   req.EntryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, promote.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/waitlist/promote - Session not found: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, promote.ErrSessionFinished):
			h.logger.Warn("POST /sessions/{id}/waitlist/promote - Session finished: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondConflict(w, msgSessionFinished)

		case errors.Is(err, promote.ErrSessionFull):
			h.logger.Warn("POST /sessions/{id}/waitlist/promote - Session full: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondConflict(w, msgSessionFull)

		case errors.Is(err, promote.ErrEntryNotFound):
			h.logger.Warn("POST /sessions/{id}/waitlist/promote - Entry not found: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, promote.ErrWaitlistEmpty):
			h.logger.Warn("POST /sessions/{id}/waitlist/promote - Waitlist empty: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondConflict(w, msgWaitlistEmpty)

		case errors.Is(err, promote.ErrConcurrentUpdate):
			h.logger.Warn("POST /sessions/{id}/waitlist/promote - Concurrent update: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("POST /sessions/{id}/waitlist/promote - Failed to promote: tenant_id=%d, session_id=%d, error=%v",
				tenantID, sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/waitlist/promote - Promoted participant: tenant_id=%d, session_id=%d, participant_id=%d",
		tenantID, sessionID, result.ParticipantID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
