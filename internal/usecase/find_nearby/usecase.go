package find_nearby

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	providerRepo "github.com/m04kA/QA-MatchingService/internal/infra/storage/provider"
	"github.com/m04kA/QA-MatchingService/pkg/geokit"
)

// UseCase use case поиска PENDING-заявок рядом с исполнителем.
// Чистое чтение: ничего не блокирует и не мутирует.
type UseCase struct {
	requestRepo   RequestRepository
	providerRepo  ProviderRepository
	radiusKM      float64
	maxRequestAge time.Duration
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	providerRepo ProviderRepository,
	radiusKM float64,
	maxRequestAge time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:   requestRepo,
		providerRepo:  providerRepo,
		radiusKM:      radiusKM,
		maxRequestAge: maxRequestAge,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет поиск заявок в радиусе обслуживания исполнителя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindNearby: provider=%d, radius=%.1fkm, maxAge=%s",
		req.ProviderID, uc.radiusKM, uc.maxRequestAge)

	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("FindNearby: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем профиль исполнителя
	profile, err := uc.providerRepo.GetByUserID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("FindNearby: provider profile id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("FindNearby: failed to get provider profile id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider profile: %v", ErrInternal, err)
	}

	// 3. Policy gates: верификация проверяется до доступности и координат
	if !profile.IsVerified {
		uc.logger.Warn("FindNearby: provider id=%d is not verified", req.ProviderID)
		return nil, ErrNotVerified
	}
	if !profile.IsAvailable {
		uc.logger.Warn("FindNearby: provider id=%d is not available", req.ProviderID)
		return nil, ErrNotAvailable
	}
	if !profile.HasLocation() {
		uc.logger.Warn("FindNearby: provider id=%d has no location set", req.ProviderID)
		return nil, ErrNoLocation
	}

	providerLat := *profile.Latitude
	providerLon := *profile.Longitude

	// 4. Грубая фильтрация кандидатов через bounding box.
	// Рамка может включать лишние точки, но не исключает точки внутри радиуса.
	box := geokit.BoxAround(providerLat, providerLon, uc.radiusKM)
	since := uc.timeProvider.Now().Add(-uc.maxRequestAge)

	candidates, err := uc.requestRepo.FindPendingInBox(ctx, box, since)
	if err != nil {
		uc.logger.Error("FindNearby: failed to get candidates for provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get candidate requests: %v", ErrInternal, err)
	}

	// 5. Точная фильтрация по geodesic-расстоянию
	nearby := make([]NearbyRequest, 0, len(candidates))
	for _, candidate := range candidates {
		distance := geokit.HaversineKM(providerLat, providerLon, candidate.Latitude, candidate.Longitude)
		if distance > uc.radiusKM {
			continue
		}
		nearby = append(nearby, NearbyRequest{
			ID:          candidate.ID,
			CustomerID:  candidate.CustomerID,
			ServiceID:   candidate.ServiceID,
			ServiceName: candidate.ServiceName,
			Status:      string(candidate.Status),
			Latitude:    candidate.Latitude,
			Longitude:   candidate.Longitude,
			DistanceKM:  distance,
			CreatedAt:   candidate.CreatedAt,
		})
	}

	// 6. Сортировка: по расстоянию, при равенстве - более ранние заявки первыми
	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].DistanceKM != nearby[j].DistanceKM {
			return nearby[i].DistanceKM < nearby[j].DistanceKM
		}
		if !nearby[i].CreatedAt.Equal(nearby[j].CreatedAt) {
			return nearby[i].CreatedAt.Before(nearby[j].CreatedAt)
		}
		return nearby[i].ID < nearby[j].ID
	})

	uc.logger.Info("FindNearby: provider=%d, %d candidates in box, %d within %.1fkm",
		req.ProviderID, len(candidates), len(nearby), uc.radiusKM)

	return &Response{Requests: nearby}, nil
}

func (uc *UseCase) validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if uc.radiusKM <= 0 {
		return fmt.Errorf("%w: search radius must be positive", ErrInvalidInput)
	}
	if uc.maxRequestAge <= 0 {
		return fmt.Errorf("%w: max request age must be positive", ErrInvalidInput)
	}
	return nil
}
