package create_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/QA-MatchingService/internal/api/handlers"
	"github.com/m04kA/QA-MatchingService/internal/api/middleware"
	"github.com/m04kA/QA-MatchingService/internal/service/requests"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgOnlyCustomers      = "создавать заявки могут только заказчики"
	msgInvalidInput       = "некорректные данные заявки"
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

// Handle POST /api/v1/requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем идентичность из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	role, _ := middleware.GetUserRole(r.Context())

	// Декодируем body
	var body CreateRequestBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем заявку
	created, err := h.service.Create(r.Context(), role, body.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrRoleNotAllowed):
			h.logger.Warn("POST /requests - Role not allowed: user_id=%d, role=%s", userID, role)
			handlers.RespondForbidden(w, msgOnlyCustomers)

		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("POST /requests - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /requests - Failed to create request: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests - Request created successfully: request_id=%d, user_id=%d",
		created.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}
