package list_nearby_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/QA-MatchingService/internal/api/handlers"
	"github.com/m04kA/QA-MatchingService/internal/api/middleware"
	"github.com/m04kA/QA-MatchingService/internal/domain"
	"github.com/m04kA/QA-MatchingService/internal/usecase/find_nearby"
)

const (
	msgMissingUserID   = "отсутствует ID пользователя"
	msgProvidersOnly   = "операция доступна только исполнителям"
	msgProviderMissing = "профиль исполнителя не найден"
	msgNotVerified     = "аккаунт должен быть верифицирован администратором"
	msgNotAvailable    = "вы не отмечены как доступный для заказов"
	msgNoLocation      = "не установлены координаты - отправьте позицию"
)

type Handler struct {
	useCase FindNearbyUseCase
	logger  Logger
}

func NewHandler(useCase FindNearbyUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/matching/available-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /matching/available-requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleProvider {
		h.logger.Warn("GET /matching/available-requests - Role not allowed: user_id=%d, role=%s", userID, role)
		handlers.RespondForbidden(w, msgProvidersOnly)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), &find_nearby.Request{ProviderID: userID})
	if err != nil {
		switch {
		case errors.Is(err, find_nearby.ErrProviderNotFound):
			h.logger.Warn("GET /matching/available-requests - Provider profile not found: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgProviderMissing)

		case errors.Is(err, find_nearby.ErrNotVerified):
			h.logger.Warn("GET /matching/available-requests - Provider not verified: user_id=%d", userID)
			handlers.RespondForbidden(w, msgNotVerified)

		case errors.Is(err, find_nearby.ErrNotAvailable):
			h.logger.Warn("GET /matching/available-requests - Provider not available: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgNotAvailable)

		case errors.Is(err, find_nearby.ErrNoLocation):
			h.logger.Warn("GET /matching/available-requests - Provider location not set: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgNoLocation)

		default:
			h.logger.Error("GET /matching/available-requests - Failed to find nearby requests: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /matching/available-requests - Found %d requests: user_id=%d",
		len(resp.Requests), userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
