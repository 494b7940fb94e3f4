package delete_session_type

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
	msgInvalidTypeID   = "некорректный ID типа занятия"
	msgMissingTenantID = "отсутствует ID тенанта"
	msgTypeNotFound    = "тип занятия не найден"
	msgTypeInUse       = "тип занятия используется активными занятиями"
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

// Handle DELETE /api/v1/session-types/{typeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /session-types/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	typeID, err := strconv.ParseInt(mux.Vars(r)["typeId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /session-types/{id} - Invalid type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTypeID)
		return
	}

	if err := h.service.DeleteType(r.Context(), tenantID, typeID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrTypeNotFound):
			h.logger.Warn("DELETE /session-types/{id} - Type not found: tenant_id=%d, type_id=%d", tenantID, typeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, catalog.ErrTypeInUse):
			h.logger.Warn("DELETE /session-types/{id} - Type in use: tenant_id=%d, type_id=%d", tenantID, typeID)
			handlers.RespondConflict(w, msgTypeInUse)

		default:
			h.logger.Error("DELETE /session-types/{id} - Failed to delete type: tenant_id=%d, type_id=%d, error=%v",
				tenantID, typeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /session-types/{id} - Type deleted successfully: tenant_id=%d, type_id=%d", tenantID, typeID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
