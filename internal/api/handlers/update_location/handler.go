package update_location

import (
	"errors"
	"net/http"

	"github.com/m04kA/QA-MatchingService/internal/api/handlers"
	"github.com/m04kA/QA-MatchingService/internal/api/middleware"
	"github.com/m04kA/QA-MatchingService/internal/domain"
	locationUC "github.com/m04kA/QA-MatchingService/internal/usecase/update_location"
)

const (
	msgInvalidBody        = "некорректное тело запроса"
	msgInvalidCoordinates = "координаты вне допустимых пределов"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgProvidersOnly      = "обновлять позицию могут только исполнители"
	msgProfileNotFound    = "профиль исполнителя не найден"
)

type Handler struct {
	useCase UpdateLocationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateLocationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/providers/location
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /providers/location - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	role, _ := middleware.GetUserRole(r.Context())
	if role != domain.RoleProvider {
		h.logger.Warn("PUT /providers/location - Role not allowed: user_id=%d, role=%s", userID, role)
		handlers.RespondForbidden(w, msgProvidersOnly)
		return
	}

	var body UpdateLocationRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /providers/location - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	err := h.useCase.Execute(r.Context(), &locationUC.Request{
		ProviderID: userID,
		Latitude:   body.Latitude,
		Longitude:  body.Longitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, locationUC.ErrInvalidCoordinates):
			h.logger.Warn("PUT /providers/location - Invalid coordinates: user_id=%d, lat=%f, lon=%f",
				userID, body.Latitude, body.Longitude)
			handlers.RespondBadRequest(w, msgInvalidCoordinates)

		case errors.Is(err, locationUC.ErrProviderNotFound):
			h.logger.Warn("PUT /providers/location - Profile not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, locationUC.ErrInvalidInput):
			h.logger.Warn("PUT /providers/location - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("PUT /providers/location - Failed to update location: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/location - Location updated: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, &UpdateLocationResponse{
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
	})
}
