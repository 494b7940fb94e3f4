package generate_recurring_sessions

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-GroupSessionService/internal/api/handlers"
	"github.com/m04kA/SMC-GroupSessionService/internal/api/middleware"
	generateRecurring "github.com/m04kA/SMC-GroupSessionService/internal/usecase/generate_recurring_sessions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgTypeNotFound       = "тип занятия не найден"
	msgTypeInactive       = "тип занятия деактивирован"
	msgHostNotFound       = "ведущий не найден"
	msgInvalidSeriesData  = "некорректные параметры серии занятий"
)

type Handler struct {
	useCase GenerateRecurringUseCase
	logger  Logger
}

func NewHandler(useCase GenerateRecurringUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/recurring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/recurring - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	var req GenerateRecurringRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID)
	if err != nil {
		h.logger.Warn("POST /sessions/recurring - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateRecurring.ErrTypeNotFound):
			h.logger.Warn("POST /sessions/recurring - Type not found: tenant_id=%d, type_id=%d", tenantID, req.SessionTypeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, generateRecurring.ErrTypeInactive):
			h.logger.Warn("POST /sessions/recurring - Type inactive: tenant_id=%d, type_id=%d", tenantID, req.SessionTypeID)
			handlers.RespondConflict(w, msgTypeInactive)

		case errors.Is(err, generateRecurring.ErrHostNotFound):
			h.logger.Warn("POST /sessions/recurring - Host not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgHostNotFound)

		case errors.Is(err, generateRecurring.ErrInvalidInput):
			h.logger.Warn("POST /sessions/recurring - Invalid series data: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidSeriesData)

		default:
			h.logger.Error("POST /sessions/recurring - Failed to generate series: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/recurring - Series generated successfully: tenant_id=%d, count=%d",
		tenantID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
