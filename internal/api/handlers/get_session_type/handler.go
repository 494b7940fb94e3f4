package get_session_type

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

// Handle GET /api/v1/session-types/{typeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /session-types/{id} - Missing tenant ID")
		handlers.RespondUnauthorized(w, msgMissingTenantID)
		return
	}

	typeID, err := strconv.ParseInt(mux.Vars(r)["typeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /session-types/{id} - Invalid type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTypeID)
		return
	}

	result, err := h.service.GetType(r.Context(), tenantID, typeID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrTypeNotFound):
			h.logger.Warn("GET /session-types/{id} - Type not found: tenant_id=%d, type_id=%d", tenantID, typeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		default:
			h.logger.Error("GET /session-types/{id} - Failed to get type: tenant_id=%d, type_id=%d, error=%v",
				tenantID, typeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /session-types/{id} - Type retrieved successfully: tenant_id=%d, type_id=%d", tenantID, typeID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
