package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/sessiontype"
	"github.com/m04kA/SMC-GroupSessionService/internal/service/catalog/models"
)

// Service сервис управления каталогом типов занятий
type Service struct {
	typeRepo    SessionTypeRepository
	sessionRepo SessionRepository
	logger      Logger
}

// NewService создает новый сервис каталога
func NewService(typeRepo SessionTypeRepository, sessionRepo SessionRepository, logger Logger) *Service {
	return &Service{
		typeRepo:    typeRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// CreateType создает новый тип занятия
func (s *Service) CreateType(ctx context.Context, req *models.CreateTypeRequest) (*models.TypeResponse, error) {
	sessionType := req.ToDomain()

	if err := sessionType.Validate(); err != nil {
		s.logger.Warn("[CreateType] Validation failed: tenant_id=%d, name=%q, error=%v", req.TenantID, req.Name, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.typeRepo.Create(ctx, sessionType)
	if err != nil {
		s.logger.Error("[CreateType] Failed to create session type: tenant_id=%d, name=%q, error=%v", req.TenantID, req.Name, err)
		return nil, fmt.Errorf("%w: CreateType: %v", ErrInternal, err)
	}

	s.logger.Info("[CreateType] Session type created: tenant_id=%d, type_id=%d, name=%q", created.TenantID, created.ID, created.Name)

	return models.FromDomainType(created), nil
}

// GetType возвращает тип занятия по ID
func (s *Service) GetType(ctx context.Context, tenantID, typeID int64) (*models.TypeResponse, error) {
	sessionType, err := s.typeRepo.GetByID(ctx, tenantID, typeID)
	if err != nil {
		if errors.Is(err, sessiontype.ErrTypeNotFound) {
			return nil, fmt.Errorf("%w: tenant_id=%d, type_id=%d", ErrTypeNotFound, tenantID, typeID)
		}
		s.logger.Error("[GetType] Failed to get session type: tenant_id=%d, type_id=%d, error=%v", tenantID, typeID, err)
		return nil, fmt.Errorf("%w: GetType: %v", ErrInternal, err)
	}

	return models.FromDomainType(sessionType), nil
}

// ListTypes возвращает список типов занятий тенанта
func (s *Service) ListTypes(ctx context.Context, tenantID int64, activeOnly bool) (*models.TypeListResponse, error) {
	types, err := s.typeRepo.List(ctx, tenantID, activeOnly)
	if err != nil {
		s.logger.Error("[ListTypes] Failed to list session types: tenant_id=%d, error=%v", tenantID, err)
		return nil, fmt.Errorf("%w: ListTypes: %v", ErrInternal, err)
	}

	return models.FromDomainTypeList(types), nil
}

// UpdateType обновляет тип занятия
func (s *Service) UpdateType(ctx context.Context, req *models.UpdateTypeRequest) (*models.TypeResponse, error) {
	current, err := s.typeRepo.GetByID(ctx, req.TenantID, req.TypeID)
	if err != nil {
		if errors.Is(err, sessiontype.ErrTypeNotFound) {
			return nil, fmt.Errorf("%w: tenant_id=%d, type_id=%d", ErrTypeNotFound, req.TenantID, req.TypeID)
		}
		s.logger.Error("[UpdateType] Failed to get session type: tenant_id=%d, type_id=%d, error=%v", req.TenantID, req.TypeID, err)
		return nil, fmt.Errorf("%w: UpdateType: %v", ErrInternal, err)
	}

	current.Name = req.Name
	current.Description = req.Description
	current.MinParticipants = req.MinParticipants
	current.MaxParticipants = req.MaxParticipants
	current.PricePerPerson = req.PricePerPerson
	current.DurationMinutes = req.DurationMinutes
	current.Active = req.Active

	if err := current.Validate(); err != nil {
		s.logger.Warn("[UpdateType] Validation failed: tenant_id=%d, type_id=%d, error=%v", req.TenantID, req.TypeID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.typeRepo.Update(ctx, current); err != nil {
		if errors.Is(err, sessiontype.ErrTypeNotFound) {
			return nil, fmt.Errorf("%w: tenant_id=%d, type_id=%d", ErrTypeNotFound, req.TenantID, req.TypeID)
		}
		s.logger.Error("[UpdateType] Failed to update session type: tenant_id=%d, type_id=%d, error=%v", req.TenantID, req.TypeID, err)
		return nil, fmt.Errorf("%w: UpdateType: %v", ErrInternal, err)
	}

	s.logger.Info("[UpdateType] Session type updated: tenant_id=%d, type_id=%d", req.TenantID, req.TypeID)

	return models.FromDomainType(current), nil
}

// DeleteType удаляет тип занятия.
// Удаление запрещено, пока на тип ссылаются активные занятия.
func (s *Service) DeleteType(ctx context.Context, tenantID, typeID int64) error {
	if _, err := s.typeRepo.GetByID(ctx, tenantID, typeID); err != nil {
		if errors.Is(err, sessiontype.ErrTypeNotFound) {
			return fmt.Errorf("%w: tenant_id=%d, type_id=%d", ErrTypeNotFound, tenantID, typeID)
		}
		s.logger.Error("[DeleteType] Failed to get session type: tenant_id=%d, type_id=%d, error=%v", tenantID, typeID, err)
		return fmt.Errorf("%w: DeleteType: %v", ErrInternal, err)
	}

	activeCount, err := s.sessionRepo.CountActiveByTypeID(ctx, tenantID, typeID)
	if err != nil {
		s.logger.Error("[DeleteType] Failed to count active sessions: tenant_id=%d, type_id=%d, error=%v", tenantID, typeID, err)
		return fmt.Errorf("%w: DeleteType: %v", ErrInternal, err)
	}

	if activeCount > 0 {
		s.logger.Warn("[DeleteType] Session type is in use: tenant_id=%d, type_id=%d, active_sessions=%d", tenantID, typeID, activeCount)
		return fmt.Errorf("%w: tenant_id=%d, type_id=%d, active_sessions=%d", ErrTypeInUse, tenantID, typeID, activeCount)
	}

	if err := s.typeRepo.Delete(ctx, tenantID, typeID); err != nil {
		if errors.Is(err, sessiontype.ErrTypeNotFound) {
			return fmt.Errorf("%w: tenant_id=%d, type_id=%d", ErrTypeNotFound, tenantID, typeID)
		}
		s.logger.Error("[DeleteType] Failed to delete session type: tenant_id=%d, type_id=%d, error=%v", tenantID, typeID, err)
		return fmt.Errorf("%w: DeleteType: %v", ErrInternal, err)
	}

	s.logger.Info("[DeleteType] Session type deleted: tenant_id=%d, type_id=%d", tenantID, typeID)

	return nil
}
