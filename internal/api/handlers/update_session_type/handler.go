package update_session_type

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroupSessionService/internal/api/handlers"
	"github.com/m04kA/SMC-GroupSessionService/internal/api/middleware"
	"github.com/m04kA/SMC-GroupSessionService/internal/service/catalog"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTypeID      = "некорректный ID типа занятия"
	msgMissingTenantID    = "отсутствует ID тенанта"
	msgTypeNotFound       = "тип занятия не найден"
	msgInvalidTypeData    = "некорректные данные типа занятия"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/session-types/{typeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PUT /session-types/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	typeID, err := strconv.ParseInt(mux.Vars(r)["typeId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /session-types/{id} - Invalid type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTypeID)
		return
	}

	var req UpdateSessionTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /session-types/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateType(r.Context(), req.ToServiceRequest(tenantID, typeID))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrTypeNotFound):
			h.logger.Warn("PUT /session-types/{id} - Type not found: tenant_id=%d, type_id=%d", tenantID, typeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /session-types/{id} - Invalid type data: tenant_id=%d, type_id=%d, error=%v",
				tenantID, typeID, err)
			handlers.RespondBadRequest(w, msgInvalidTypeData)

		default:
			h.logger.Error("PUT /session-types/{id} - Failed to update type: tenant_id=%d, type_id=%d, error=%v",
				tenantID, typeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /session-types/{id} - Type updated successfully: tenant_id=%d, type_id=%d", tenantID, typeID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
