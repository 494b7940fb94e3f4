package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GroupSessionService/internal/api/handlers"
	"github.com/m04kA/SMC-GroupSessionService/internal/api/middleware"
	createSession "github.com/m04kA/SMC-GroupSessionService/internal/usecase/create_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgTypeNotFound       = "тип занятия не найден"
	msgTypeInactive       = "тип занятия деактивирован"
	msgHostNotFound       = "ведущий не найден"
	msgInvalidSessionData = "некорректные данные занятия"
)

type Handler struct {
	useCase CreateSessionUseCase
	logger  Logger
}

func NewHandler(useCase CreateSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /sessions - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSession.ErrTypeNotFound):
			h.logger.Warn("POST /sessions - Type not found: tenant_id=%d, type_id=%d", tenantID, req.SessionTypeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, createSession.ErrTypeInactive):
			h.logger.Warn("POST /sessions - Type inactive: tenant_id=%d, type_id=%d", tenantID, req.SessionTypeID)
			handlers.RespondConflict(w, msgTypeInactive)

		case errors.Is(err, createSession.ErrHostNotFound):
			h.logger.Warn("POST /sessions - Host not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgHostNotFound)

		case errors.Is(err, createSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid session data: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidSessionData)

		default:
			h.logger.Error("POST /sessions - Failed to create session: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session created successfully: tenant_id=%d, session_id=%d", tenantID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
