package generate_recurring_sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	typeRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/sessiontype"
	staffClient "github.com/m04kA/SMC-GroupSessionService/internal/integrations/staffservice"
)

// UseCase use case генерации серии повторяющихся занятий
type UseCase struct {
	typeRepo    SessionTypeRepository
	sessionRepo SessionRepository
	staffClient StaffServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	typeRepo SessionTypeRepository,
	sessionRepo SessionRepository,
	staffClient StaffServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		typeRepo:    typeRepo,
		sessionRepo: sessionRepo,
		staffClient: staffClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute генерирует серию занятий по календарному шаблону
// monthly сдвигает календарный месяц, а не фиксированное число дней.
// Вся серия создается в одной транзакции: при сбое не остается
// частично созданных занятий
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateRecurringSessions: tenant=%d, type=%d, pattern=%s, occurrences=%d",
		req.TenantID, req.SessionTypeID, req.Pattern, req.Occurrences)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateRecurringSessions: validation failed: %v", err)
		return nil, err
	}

	pattern, err := domain.ParseRecurrencePattern(req.Pattern)
	if err != nil {
		uc.logger.Warn("GenerateRecurringSessions: unknown pattern %q", req.Pattern)
		return nil, fmt.Errorf("%w: unknown recurrence pattern %q", ErrInvalidInput, req.Pattern)
	}

	// 2. Получаем тип занятия
	sessionType, err := uc.typeRepo.GetByID(ctx, req.TenantID, req.SessionTypeID)
	if err != nil {
		if errors.Is(err, typeRepo.ErrTypeNotFound) {
			uc.logger.Warn("GenerateRecurringSessions: session type id=%d not found", req.SessionTypeID)
			return nil, fmt.Errorf("%w: type_id=%d", ErrTypeNotFound, req.SessionTypeID)
		}
		uc.logger.Error("GenerateRecurringSessions: failed to get session type id=%d: %v", req.SessionTypeID, err)
		return nil, fmt.Errorf("%w: failed to get session type: %v", ErrInternal, err)
	}

	if !sessionType.Active {
		uc.logger.Warn("GenerateRecurringSessions: session type id=%d is inactive", req.SessionTypeID)
		return nil, fmt.Errorf("%w: type_id=%d", ErrTypeInactive, req.SessionTypeID)
	}

	// 3. Проверяем ведущего
	if req.HostID != nil {
		if _, err := uc.staffClient.GetEmployee(ctx, req.TenantID, *req.HostID); err != nil {
			if errors.Is(err, staffClient.ErrEmployeeNotFound) {
				uc.logger.Warn("GenerateRecurringSessions: host id=%d not found", *req.HostID)
				return nil, fmt.Errorf("%w: host_id=%d", ErrHostNotFound, *req.HostID)
			}
			uc.logger.Error("GenerateRecurringSessions: failed to get host id=%d: %v", *req.HostID, err)
			return nil, fmt.Errorf("%w: failed to get host: %v", ErrInternal, err)
		}
	}

	// 4. Вычисляем расписание серии
	schedule := domain.RecurrenceSchedule(req.StartTime, pattern, req.Occurrences)

	// 5. Создаем всю серию атомарно
	created := make([]*domain.Session, 0, len(schedule))

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		for _, start := range schedule {
			session := &domain.Session{
				TenantID:            req.TenantID,
				SessionTypeID:       sessionType.ID,
				Title:               req.Title,
				Description:         req.Description,
				StartTime:           start,
				EndTime:             start.Add(sessionType.Duration()),
				MaxParticipants:     sessionType.MaxParticipants,
				CurrentParticipants: 0,
				Status:              domain.SessionStatusOpen,
				HostID:              req.HostID,
				IsPublic:            req.IsPublic,
				PricePerPerson:      sessionType.PricePerPerson,
			}

			saved, err := uc.sessionRepo.Create(txCtx, session)
			if err != nil {
				return fmt.Errorf("%w: failed to create session at %s: %v",
					ErrInternal, start.Format(domain.DateFormat), err)
			}

			created = append(created, saved)
		}
		return nil
	})

	if err != nil {
		uc.logger.Error("GenerateRecurringSessions: batch failed, no sessions created: %v", err)
		return nil, err
	}

	uc.logger.Info("GenerateRecurringSessions: created %d sessions, first id=%d",
		len(created), created[0].ID)

	return fromDomainList(created), nil
}
