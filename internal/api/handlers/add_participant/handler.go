package add_participant

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroupSessionService/internal/api/handlers"
	"github.com/m04kA/SMC-GroupSessionService/internal/api/middleware"
	addParticipant "github.com/m04kA/SMC-GroupSessionService/internal/usecase/add_participant"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidSessionID    = "некорректный ID занятия"
	msgMissingTenantID     = "отсутствует ID тенанта"
	msgSessionNotFound     = "занятие не найдено"
	msgSessionFinished     = "занятие отменено или завершено"
	msgCustomerNotFound    = "клиент не найден"
	msgConcurrentUpdate    = "занятие изменяется параллельно, повторите запрос"
	msgInvalidParticipant  = "укажите customerId или имя участника"
)

type Handler struct {
	useCase AddParticipantUseCase
	logger  Logger
}

func NewHandler(useCase AddParticipantUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/participants
// Переполнение вместимости - не ошибка: ответ 201 с waitlistEntry
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/participants - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	sessionID, err := strconv.ParseInt(mux.Vars(r)["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/participants - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req AddParticipantRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/participants - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID, sessionID))
	if err != nil {
		switch {
		case errors.Is(err, addParticipant.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/participants - Session not found: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, addParticipant.ErrSessionFinished):
			h.logger.Warn("POST /sessions/{id}/participants - Session finished: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondConflict(w, msgSessionFinished)

		case errors.Is(err, addParticipant.ErrCustomerNotFound):
			h.logger.Warn("POST /sessions/{id}/participants - Customer not found: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, addParticipant.ErrConcurrentUpdate):
			h.logger.Warn("POST /sessions/{id}/participants - Concurrent update: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, addParticipant.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/participants - Invalid participant: tenant_id=%d, session_id=%d, error=%v",
				tenantID, sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidParticipant)

		default:
			h.logger.Error("POST /sessions/{id}/participants - Failed to add participant: tenant_id=%d, session_id=%d, error=%v",
				tenantID, sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/participants - Participant added: tenant_id=%d, session_id=%d, enrolled=%t",
		tenantID, sessionID, result.Enrolled)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
