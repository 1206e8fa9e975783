package update_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/QA-MatchingService/internal/api/handlers"
	"github.com/m04kA/QA-MatchingService/internal/api/middleware"
	"github.com/m04kA/QA-MatchingService/internal/domain"
	statusUC "github.com/m04kA/QA-MatchingService/internal/usecase/update_status"
)

const (
	msgInvalidRequestID  = "некорректный ID заявки"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidStatus     = "некорректный целевой статус"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "заявка не найдена"
	msgAccessDenied      = "доступ к заявке запрещён"
	msgForbiddenTransfer = "недопустимый переход статуса"
)

type Handler struct {
	useCase UpdateStatusUseCase
	logger  Logger
}

func NewHandler(useCase UpdateStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests/{requestId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /requests/{id}/status - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	role, ok := middleware.GetUserRole(r.Context())
	if !ok {
		h.logger.Warn("POST /requests/{id}/status - Missing user role: user_id=%d", userID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var body UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /requests/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	target, validStatus := domain.ToRequestStatus(body.Status)
	if !validStatus {
		h.logger.Warn("POST /requests/{id}/status - Invalid target status: status=%s", body.Status)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &statusUC.Request{
		RequestID: requestID,
		UserID:    userID,
		Role:      role,
		Target:    target,
	})
	if err != nil {
		switch {
		case errors.Is(err, statusUC.ErrRequestNotFound):
			h.logger.Warn("POST /requests/{id}/status - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, statusUC.ErrAccessDenied):
			h.logger.Warn("POST /requests/{id}/status - Access denied: request_id=%d, user_id=%d",
				requestID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, statusUC.ErrInvalidTransition):
			h.logger.Warn("POST /requests/{id}/status - Invalid transition: request_id=%d, target=%s, role=%s",
				requestID, target, role)
			handlers.RespondBadRequest(w, msgForbiddenTransfer)

		case errors.Is(err, statusUC.ErrInvalidInput):
			h.logger.Warn("POST /requests/{id}/status - Invalid input: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("POST /requests/{id}/status - Failed to update status: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests/{id}/status - Status updated: request_id=%d, user_id=%d, status=%s",
		requestID, userID, resp.Status)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
