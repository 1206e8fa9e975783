package accept_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/QA-MatchingService/internal/domain"
	requestRepo "github.com/m04kA/QA-MatchingService/internal/infra/storage/request"
	"github.com/m04kA/QA-MatchingService/internal/integrations/pusher"
)

// UseCase use case принятия заявки исполнителем.
// Переход PENDING -> ACCEPTED должен быть атомарным при конкурентных попытках:
// read-check-write выполняется в сериализуемой транзакции с блокировкой строки,
// ровно один из гонящихся вызовов получает заявку.
type UseCase struct {
	requestRepo RequestRepository
	txManager   TransactionManager
	notifier    Notifier
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo: requestRepo,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
	}
}

// Execute выполняет попытку принятия заявки.
// Географическая пригодность здесь не перепроверяется - она уже проверена
// поиском; заново проверяется только статус PENDING под блокировкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcceptRequest: request=%d, provider=%d", req.RequestID, req.ProviderID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AcceptRequest: validation failed: %v", err)
		return nil, err
	}

	var result *domain.ServiceRequest

	// 2. Read-check-write единым сериализуемым блоком на строке заявки
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем заявку с блокировкой строки
		current, err := uc.requestRepo.GetByIDForUpdate(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			// Причина остается в цепочке для retry-логики transaction manager
			return fmt.Errorf("%w: failed to get request: %w", ErrInternal, err)
		}

		// 2.2. Проверяем, что заявка все еще свободна
		if current.Status != domain.StatusPending {
			return ErrAlreadyAccepted
		}

		// 2.3. Назначаем исполнителя. Условие status = PENDING в Assign
		// дублирует проверку как compare-and-swap на случай вызова вне транзакции.
		updatedAt, err := uc.requestRepo.Assign(txCtx, req.RequestID, req.ProviderID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotPending) {
				return ErrAlreadyAccepted
			}
			return fmt.Errorf("%w: failed to assign provider: %w", ErrInternal, err)
		}

		current.ProviderID = &req.ProviderID
		current.Status = domain.StatusAccepted
		current.UpdatedAt = updatedAt
		result = current
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrAlreadyAccepted) {
			uc.logger.Info("AcceptRequest: request=%d already taken, provider=%d lost the race",
				req.RequestID, req.ProviderID)
		}
		return nil, err
	}

	uc.logger.Info("AcceptRequest: request=%d accepted by provider=%d", req.RequestID, req.ProviderID)

	response := fromDomain(result)

	// 3. Уведомляем заказчика после фиксации транзакции.
	// Ошибка публикации не откатывает принятие заявки.
	channel := pusher.UserChannel(result.CustomerID)
	payload := map[string]interface{}{"request": response}
	if err := uc.notifier.Publish(ctx, channel, pusher.EventRequestAccepted, payload); err != nil {
		uc.logger.Warn("AcceptRequest: failed to notify customer=%d about request=%d: %v",
			result.CustomerID, result.ID, err)
	}

	return response, nil
}

func validateRequest(req *Request) error {
	if req.RequestID <= 0 {
		return fmt.Errorf("%w: requestID must be positive", ErrInvalidInput)
	}
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	return nil
}
