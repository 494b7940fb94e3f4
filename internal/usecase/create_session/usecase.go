package create_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	typeRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/sessiontype"
	staffClient "github.com/m04kA/SMC-GroupSessionService/internal/integrations/staffservice"
)

// UseCase use case создания занятия в расписании
type UseCase struct {
	typeRepo    SessionTypeRepository
	sessionRepo SessionRepository
	staffClient StaffServiceClient
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	typeRepo SessionTypeRepository,
	sessionRepo SessionRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		typeRepo:    typeRepo,
		sessionRepo: sessionRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// Execute создает занятие по типу
// endTime вычисляется из длительности типа, вместимость и цена
// копируются из типа на момент создания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSession: tenant=%d, type=%d, title=%q, start=%s",
		req.TenantID, req.SessionTypeID, req.Title, req.StartTime.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тип занятия
	sessionType, err := uc.typeRepo.GetByID(ctx, req.TenantID, req.SessionTypeID)
	if err != nil {
		if errors.Is(err, typeRepo.ErrTypeNotFound) {
			uc.logger.Warn("CreateSession: session type id=%d not found", req.SessionTypeID)
			return nil, fmt.Errorf("%w: type_id=%d", ErrTypeNotFound, req.SessionTypeID)
		}
		uc.logger.Error("CreateSession: failed to get session type id=%d: %v", req.SessionTypeID, err)
		return nil, fmt.Errorf("%w: failed to get session type: %v", ErrInternal, err)
	}

	if !sessionType.Active {
		uc.logger.Warn("CreateSession: session type id=%d is inactive", req.SessionTypeID)
		return nil, fmt.Errorf("%w: type_id=%d", ErrTypeInactive, req.SessionTypeID)
	}

	// 3. Проверяем ведущего
	if req.HostID != nil {
		if _, err := uc.staffClient.GetEmployee(ctx, req.TenantID, *req.HostID); err != nil {
			if errors.Is(err, staffClient.ErrEmployeeNotFound) {
				uc.logger.Warn("CreateSession: host id=%d not found", *req.HostID)
				return nil, fmt.Errorf("%w: host_id=%d", ErrHostNotFound, *req.HostID)
			}
			uc.logger.Error("CreateSession: failed to get host id=%d: %v", *req.HostID, err)
			return nil, fmt.Errorf("%w: failed to get host: %v", ErrInternal, err)
		}
	}

	// 4. Создаем занятие со снапшотом вместимости и цены
	session := &domain.Session{
		TenantID:            req.TenantID,
		SessionTypeID:       sessionType.ID,
		Title:               req.Title,
		Description:         req.Description,
		StartTime:           req.StartTime,
		EndTime:             req.StartTime.Add(sessionType.Duration()),
		MaxParticipants:     sessionType.MaxParticipants,
		CurrentParticipants: 0,
		Status:              domain.SessionStatusOpen,
		HostID:              req.HostID,
		IsPublic:            req.IsPublic,
		PricePerPerson:      sessionType.PricePerPerson,
	}

	created, err := uc.sessionRepo.Create(ctx, session)
	if err != nil {
		uc.logger.Error("CreateSession: failed to create session: %v", err)
		return nil, fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateSession: successfully created session id=%d", created.ID)

	return fromDomain(created), nil
}
