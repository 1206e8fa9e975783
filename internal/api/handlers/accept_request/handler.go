package accept_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/QA-MatchingService/internal/api/handlers"
	"github.com/m04kA/QA-MatchingService/internal/api/middleware"
	"github.com/m04kA/QA-MatchingService/internal/domain"
	acceptUC "github.com/m04kA/QA-MatchingService/internal/usecase/accept_request"
)

const (
	msgInvalidRequestID = "некорректный ID заявки"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgProvidersOnly    = "принимать заявки могут только исполнители"
	msgNotFound         = "заявка не найдена"
	msgAlreadyAccepted  = "заявка уже принята другим исполнителем"
)

type Handler struct {
	useCase AcceptRequestUseCase
	logger  Logger
}

func NewHandler(useCase AcceptRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests/{requestId}/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем requestId из URL
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /requests/{id}/accept - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests/{id}/accept - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleProvider {
		h.logger.Warn("POST /requests/{id}/accept - Role not allowed: user_id=%d, role=%s", userID, role)
		handlers.RespondForbidden(w, msgProvidersOnly)
		return
	}

	accepted, err := h.useCase.Execute(r.Context(), &acceptUC.Request{
		RequestID:  requestID,
		ProviderID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, acceptUC.ErrRequestNotFound):
			h.logger.Warn("POST /requests/{id}/accept - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, acceptUC.ErrAlreadyAccepted):
			// Проигрыш гонки - ожидаемый исход, исполнителю стоит обновить список
			h.logger.Info("POST /requests/{id}/accept - Already accepted: request_id=%d, user_id=%d",
				requestID, userID)
			handlers.RespondConflict(w, msgAlreadyAccepted)

		case errors.Is(err, acceptUC.ErrInvalidInput):
			h.logger.Warn("POST /requests/{id}/accept - Invalid input: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestID)

		default:
			h.logger.Error("POST /requests/{id}/accept - Failed to accept request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests/{id}/accept - Request accepted: request_id=%d, provider_id=%d",
		requestID, userID)
	handlers.RespondJSON(w, http.StatusOK, accepted)
}
