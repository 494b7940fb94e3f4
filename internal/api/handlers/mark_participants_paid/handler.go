package mark_participants_paid

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroupSessionService/internal/api/handlers"
	"github.com/m04kA/SMC-GroupSessionService/internal/api/middleware"
	markPaid "github.com/m04kA/SMC-GroupSessionService/internal/usecase/mark_participants_paid"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSessionID   = "некорректный ID занятия"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgSessionNotFound    = "занятие не найдено"
	msgInvalidIDs         = "некорректный список участников"
)

// MarkPaidRequest HTTP request model
type MarkPaidRequest struct {
	ParticipantIDs []int64 `json:"participantIds"`
}

// MarkPaidResponse HTTP response model
type MarkPaidResponse struct {
	Updated int64 `json:"updated"`
}

type Handler struct {
	useCase MarkParticipantsPaidUseCase
	logger  Logger
}

func NewHandler(useCase MarkParticipantsPaidUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/participants/mark-paid
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/participants/mark-paid - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	sessionID, err := strconv.ParseInt(mux.Vars(r)["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/participants/mark-paid - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req MarkPaidRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/participants/mark-paid - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &markPaid.Request{
		TenantID:       tenantID,
		SessionID:      sessionID,
		ParticipantIDs: req.ParticipantIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, markPaid.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/participants/mark-paid - Session not found: tenant_id=%d, session_id=%d",
				tenantID, sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, markPaid.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/participants/mark-paid - Invalid ids: tenant_id=%d, session_id=%d, error=%v",
				tenantID, sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidIDs)

		default:
			h.logger.Error("POST /sessions/{id}/participants/mark-paid - Failed to mark paid: tenant_id=%d, session_id=%d, error=%v",
				tenantID, sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/participants/mark-paid - Marked paid: tenant_id=%d, session_id=%d, updated=%d",
		tenantID, sessionID, result.Updated)
	handlers.RespondJSON(w, http.StatusOK, MarkPaidResponse{Updated: result.Updated})
}
