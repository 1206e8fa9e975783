package list_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/QA-MatchingService/internal/api/handlers"
	"github.com/m04kA/QA-MatchingService/internal/api/middleware"
	"github.com/m04kA/QA-MatchingService/internal/service/requests"
)

const (
	msgMissingUserID  = "отсутствует ID пользователя"
	msgRoleNotAllowed = "операция недоступна для вашей роли"
)

type Handler struct {
	service RequestService
	logger  Logger
}

func NewHandler(service RequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/requests
// Заказчики получают созданные ими заявки, исполнители - принятые ими.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	list, err := h.service.ListForUser(r.Context(), userID, role)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrRoleNotAllowed):
			h.logger.Warn("GET /requests - Role not allowed: user_id=%d, role=%s", userID, role)
			handlers.RespondForbidden(w, msgRoleNotAllowed)

		default:
			h.logger.Error("GET /requests - Failed to list requests: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /requests - Listed %d requests: user_id=%d, role=%s",
		len(list.Requests), userID, role)
	handlers.RespondJSON(w, http.StatusOK, list)
}
