package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/QA-MatchingService/internal/domain"
	requestRepo "github.com/m04kA/QA-MatchingService/internal/infra/storage/request"
	"github.com/m04kA/QA-MatchingService/internal/service/requests/models"
)

// Service read-side сервис заявок: создание, детали и списки.
// Переходы статусов и принятие заявок живут в отдельных usecase'ах.
type Service struct {
	requestRepo RequestRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(requestRepo RequestRepository, logger Logger) *Service {
	return &Service{
		requestRepo: requestRepo,
		logger:      logger,
	}
}

// Create создает новую заявку. Доступно только заказчикам;
// заявка создается в статусе PENDING без назначенного исполнителя.
func (s *Service) Create(ctx context.Context, role domain.Role, req *models.CreateRequest) (*models.RequestResponse, error) {
	s.logger.Info("Create: customer=%d, service=%d, lat=%.6f, lon=%.6f",
		req.CustomerID, req.ServiceID, req.Latitude, req.Longitude)

	if role != domain.RoleCustomer {
		s.logger.Warn("Create: user=%d with role=%s attempted to create a request", req.CustomerID, role)
		return nil, ErrRoleNotAllowed
	}

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	request := &domain.ServiceRequest{
		CustomerID:  req.CustomerID,
		ServiceID:   req.ServiceID,
		ServiceName: req.ServiceName,
		Status:      domain.StatusPending,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		s.logger.Error("Create: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created request id=%d", created.ID)
	return models.FromDomainRequest(created), nil
}

// GetByID получает заявку по ID.
// Доступно только сторонам заявки - заказчику или назначенному исполнителю.
func (s *Service) GetByID(ctx context.Context, id, userID int64) (*models.RequestResponse, error) {
	s.logger.Info("GetByID: fetching request id=%d for user=%d", id, userID)

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !request.IsParty(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to request id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched request id=%d", id)
	return models.FromDomainRequest(request), nil
}

// ListForUser получает список заявок пользователя в зависимости от его роли:
// заказчики видят созданные ими заявки (новые первыми), исполнители -
// принятые ими (недавно обновленные первыми).
func (s *Service) ListForUser(ctx context.Context, userID int64, role domain.Role) (*models.RequestListResponse, error) {
	s.logger.Info("ListForUser: fetching requests for user=%d, role=%s", userID, role)

	var (
		requests []*domain.ServiceRequest
		err      error
	)

	switch role {
	case domain.RoleCustomer:
		requests, err = s.requestRepo.GetByCustomer(ctx, userID)
	case domain.RoleProvider:
		requests, err = s.requestRepo.GetByProvider(ctx, userID)
	default:
		s.logger.Warn("ListForUser: unknown role=%s for user=%d", role, userID)
		return nil, ErrRoleNotAllowed
	}

	if err != nil {
		s.logger.Error("ListForUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListForUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForUser: successfully fetched %d requests for user=%d", len(requests), userID)
	return models.FromDomainRequestList(requests), nil
}

func validateCreate(req *models.CreateRequest) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.ServiceName == "" {
		return fmt.Errorf("%w: serviceName is required", ErrInvalidInput)
	}
	if !domain.ValidCoordinates(req.Latitude, req.Longitude) {
		return fmt.Errorf("%w: coordinates are out of range", ErrInvalidInput)
	}
	return nil
}
