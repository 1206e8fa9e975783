package update_location

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/QA-MatchingService/internal/domain"
	providerRepo "github.com/m04kA/QA-MatchingService/internal/infra/storage/provider"
)

// Request модель запроса обновления позиции исполнителя
type Request struct {
	ProviderID int64
	Latitude   float64
	Longitude  float64
}

// UseCase use case обновления позиции исполнителя.
// Сквозная запись в снимок профиля: позиция потребляется поиском заявок.
type UseCase struct {
	providerRepo ProviderRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(providerRepo ProviderRepository, logger Logger) *UseCase {
	return &UseCase{
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// Execute сохраняет новую позицию исполнителя
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("UpdateLocation: provider=%d, lat=%.6f, lon=%.6f",
		req.ProviderID, req.Latitude, req.Longitude)

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if !domain.ValidCoordinates(req.Latitude, req.Longitude) {
		uc.logger.Warn("UpdateLocation: invalid coordinates lat=%f, lon=%f for provider=%d",
			req.Latitude, req.Longitude, req.ProviderID)
		return ErrInvalidCoordinates
	}

	if err := uc.providerRepo.UpdateLocation(ctx, req.ProviderID, req.Latitude, req.Longitude); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("UpdateLocation: provider profile id=%d not found", req.ProviderID)
			return ErrProviderNotFound
		}
		uc.logger.Error("UpdateLocation: failed to update location for provider=%d: %v", req.ProviderID, err)
		return fmt.Errorf("%w: failed to update location: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateLocation: provider=%d location updated", req.ProviderID)
	return nil
}
