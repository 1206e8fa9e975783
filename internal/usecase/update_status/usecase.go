package update_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/QA-MatchingService/internal/domain"
	requestRepo "github.com/m04kA/QA-MatchingService/internal/infra/storage/request"
	"github.com/m04kA/QA-MatchingService/internal/integrations/pusher"
)

// UseCase use case перехода статуса заявки.
// Применяет каноническую таблицу переходов по ролям; read-validate-write
// выполняется в сериализуемой транзакции с блокировкой строки, чтобы
// конкурентные переходы на одной заявке не теряли друг друга.
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

// Execute выполняет переход статуса заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateStatus: request=%d, user=%d, role=%s, target=%s",
		req.RequestID, req.UserID, req.Role, req.Target)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateStatus: validation failed: %v", err)
		return nil, err
	}

	var result *domain.ServiceRequest

	// 2. Read-validate-write под блокировкой строки заявки
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем заявку с блокировкой
		current, err := uc.requestRepo.GetByIDForUpdate(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			// Причина остается в цепочке для retry-логики transaction manager
			return fmt.Errorf("%w: failed to get request: %w", ErrInternal, err)
		}

		// 2.2. Пользователь должен быть стороной заявки, и заявленная роль
		// должна соответствовать его отношению к ней
		if err := checkParty(current, req.UserID, req.Role); err != nil {
			return err
		}

		// 2.3. Проверяем переход по канонической таблице
		if !domain.AllowedTransition(req.Role, current.Status, req.Target) {
			return fmt.Errorf("%w: from %s to %s for role %s",
				ErrInvalidTransition, current.Status, req.Target, req.Role)
		}

		// 2.4. Применяем переход
		updatedAt, err := uc.requestRepo.UpdateStatus(txCtx, req.RequestID, req.Target)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		current.Status = req.Target
		current.UpdatedAt = updatedAt
		result = current
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			uc.logger.Warn("UpdateStatus: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("UpdateStatus: request=%d moved to status=%s by user=%d",
		result.ID, result.Status, req.UserID)

	// 3. Уведомляем подписчиков канала заявки после фиксации транзакции.
	// Ошибка публикации не откатывает выполненный переход.
	channel := pusher.RequestChannel(result.ID)
	payload := map[string]interface{}{"status": string(result.Status)}
	if err := uc.notifier.Publish(ctx, channel, pusher.EventStatusUpdate, payload); err != nil {
		uc.logger.Warn("UpdateStatus: failed to notify channel=%s about request=%d: %v",
			channel, result.ID, err)
	}

	return fromDomain(result), nil
}

// checkParty проверяет, что пользователь в заявленной роли является стороной заявки
func checkParty(req *domain.ServiceRequest, userID int64, role domain.Role) error {
	switch role {
	case domain.RoleCustomer:
		if req.CustomerID == userID {
			return nil
		}
	case domain.RoleProvider:
		if req.ProviderID != nil && *req.ProviderID == userID {
			return nil
		}
	}
	return ErrAccessDenied
}

func validateRequest(req *Request) error {
	if req.RequestID <= 0 {
		return fmt.Errorf("%w: requestID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if _, ok := domain.ToRole(string(req.Role)); !ok {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}
	if _, ok := domain.ToRequestStatus(string(req.Target)); !ok {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Target)
	}
	return nil
}
