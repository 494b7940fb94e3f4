package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/internal/infra/events"
	sessionRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/session"
	staffClient "github.com/m04kA/SMC-GroupSessionService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-GroupSessionService/internal/service/schedule/models"
	"github.com/m04kA/SMC-GroupSessionService/pkg/txmanager"
)

// Service сервис управления расписанием занятий
type Service struct {
	sessionRepo     SessionRepository
	participantRepo ParticipantRepository
	waitlistRepo    WaitlistRepository
	staffClient     StaffServiceClient
	txManager       TransactionManager
	publisher       EventPublisher
	logger          Logger
}

// NewService создает новый сервис расписания
func NewService(
	sessionRepo SessionRepository,
	participantRepo ParticipantRepository,
	waitlistRepo WaitlistRepository,
	staffClient StaffServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		waitlistRepo:    waitlistRepo,
		staffClient:     staffClient,
		txManager:       txManager,
		publisher:       publisher,
		logger:          logger,
	}
}

// GetSession возвращает занятие вместе со списком участников
func (s *Service) GetSession(ctx context.Context, tenantID, sessionID int64) (*models.SessionDetailResponse, error) {
	session, err := s.sessionRepo.GetByID(ctx, tenantID, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: tenant_id=%d, session_id=%d", ErrSessionNotFound, tenantID, sessionID)
		}
		s.logger.Error("[GetSession] Failed to get session: tenant_id=%d, session_id=%d, error=%v", tenantID, sessionID, err)
		return nil, fmt.Errorf("%w: GetSession: %v", ErrInternal, err)
	}

	participants, err := s.participantRepo.ListBySession(ctx, tenantID, sessionID)
	if err != nil {
		s.logger.Error("[GetSession] Failed to list participants: tenant_id=%d, session_id=%d, error=%v", tenantID, sessionID, err)
		return nil, fmt.Errorf("%w: GetSession: %v", ErrInternal, err)
	}

	resp := &models.SessionDetailResponse{
		Session:      *models.FromDomainSession(session),
		Participants: make([]models.ParticipantResponse, 0, len(participants)),
	}
	for _, p := range participants {
		resp.Participants = append(resp.Participants, *models.FromDomainParticipant(p))
	}

	return resp, nil
}

// ListSessions возвращает список занятий тенанта по фильтру
func (s *Service) ListSessions(ctx context.Context, req *models.ListSessionsRequest) (*models.SessionListResponse, error) {
	if req.Status != nil {
		if err := validateStatus(*req.Status); err != nil {
			s.logger.Warn("[ListSessions] Invalid status filter: tenant_id=%d, status=%q", req.TenantID, *req.Status)
			return nil, err
		}
	}

	sessions, err := s.sessionRepo.List(ctx, req.ToFilter())
	if err != nil {
		s.logger.Error("[ListSessions] Failed to list sessions: tenant_id=%d, error=%v", req.TenantID, err)
		return nil, fmt.Errorf("%w: ListSessions: %v", ErrInternal, err)
	}

	return models.FromDomainSessionList(sessions), nil
}

// UpdateSession частично обновляет занятие
// Уменьшение вместимости ниже текущего числа участников запрещено,
// занятия в терминальном статусе не изменяются
func (s *Service) UpdateSession(ctx context.Context, req *models.UpdateSessionRequest) (*models.SessionResponse, error) {
	if req.MaxParticipants != nil && *req.MaxParticipants < domain.MinTypeParticipants {
		return nil, fmt.Errorf("%w: maxParticipants must be at least %d", ErrInvalidInput, domain.MinTypeParticipants)
	}
	if req.Title != nil && *req.Title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
	}
	if req.HostID != nil && req.ClearHost {
		return nil, fmt.Errorf("%w: hostId and clearHost are mutually exclusive", ErrInvalidInput)
	}

	// Проверяем ведущего до транзакции, чтобы не держать блокировку
	// занятия на время HTTP вызова
	if req.HostID != nil {
		if _, err := s.staffClient.GetEmployee(ctx, req.TenantID, *req.HostID); err != nil {
			if errors.Is(err, staffClient.ErrEmployeeNotFound) {
				s.logger.Warn("[UpdateSession] Host not found: tenant_id=%d, host_id=%d", req.TenantID, *req.HostID)
				return nil, fmt.Errorf("%w: host_id=%d", ErrHostNotFound, *req.HostID)
			}
			s.logger.Error("[UpdateSession] Failed to get host: tenant_id=%d, host_id=%d, error=%v", req.TenantID, *req.HostID, err)
			return nil, fmt.Errorf("%w: UpdateSession - get host: %v", ErrInternal, err)
		}
	}

	var result *domain.Session

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		session, err := s.sessionRepo.GetByID(txCtx, req.TenantID, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return fmt.Errorf("%w: tenant_id=%d, session_id=%d", ErrSessionNotFound, req.TenantID, req.SessionID)
			}
			return fmt.Errorf("%w: UpdateSession - get session: %v", ErrInternal, err)
		}

		if session.IsTerminal() {
			return fmt.Errorf("%w: session_id=%d, status=%s", ErrSessionFinished, session.ID, session.Status)
		}

		if req.Title != nil {
			session.Title = *req.Title
		}
		if req.Description != nil {
			session.Description = req.Description
		}
		if req.StartTime != nil {
			// Сдвигаем занятие целиком, сохраняя длительность
			duration := session.EndTime.Sub(session.StartTime)
			session.StartTime = *req.StartTime
			session.EndTime = req.StartTime.Add(duration)
		}
		if req.HostID != nil {
			session.HostID = req.HostID
		}
		if req.ClearHost {
			session.HostID = nil
		}
		if req.MaxParticipants != nil {
			if *req.MaxParticipants < session.CurrentParticipants {
				return fmt.Errorf("%w: max=%d, current=%d", ErrCapacityBelowEnrolled,
					*req.MaxParticipants, session.CurrentParticipants)
			}
			session.MaxParticipants = *req.MaxParticipants
			// Изменение вместимости может перевести занятие между open и full
			session.Status = session.StatusForCount(session.CurrentParticipants)
		}

		if err := s.sessionRepo.Update(txCtx, session); err != nil {
			return fmt.Errorf("%w: UpdateSession - update session: %v", ErrInternal, err)
		}

		result = session
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			s.logger.Warn("[UpdateSession] Concurrent update: tenant_id=%d, session_id=%d", req.TenantID, req.SessionID)
			return nil, fmt.Errorf("%w: session_id=%d", ErrConcurrentUpdate, req.SessionID)
		}
		if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionFinished) && !errors.Is(err, ErrCapacityBelowEnrolled) {
			s.logger.Error("[UpdateSession] Failed: tenant_id=%d, session_id=%d, error=%v", req.TenantID, req.SessionID, err)
		}
		return nil, err
	}

	s.logger.Info("[UpdateSession] Session updated: tenant_id=%d, session_id=%d", req.TenantID, req.SessionID)

	return models.FromDomainSession(result), nil
}

// CancelSession отменяет занятие
// Отмена терминальна: участники и лист ожидания сохраняются для истории,
// уведомления рассылают консьюмеры события session.cancelled
func (s *Service) CancelSession(ctx context.Context, tenantID, sessionID int64) (*models.SessionResponse, error) {
	var result *domain.Session

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		session, err := s.sessionRepo.GetByID(txCtx, tenantID, sessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return fmt.Errorf("%w: tenant_id=%d, session_id=%d", ErrSessionNotFound, tenantID, sessionID)
			}
			return fmt.Errorf("%w: CancelSession - get session: %v", ErrInternal, err)
		}

		if session.IsTerminal() {
			return fmt.Errorf("%w: session_id=%d, status=%s", ErrSessionFinished, session.ID, session.Status)
		}

		if err := s.sessionRepo.Cancel(txCtx, tenantID, sessionID); err != nil {
			return fmt.Errorf("%w: CancelSession - cancel session: %v", ErrInternal, err)
		}

		now := time.Now()
		session.Status = domain.SessionStatusCancelled
		session.CancelledAt = &now

		result = session
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			s.logger.Warn("[CancelSession] Concurrent update: tenant_id=%d, session_id=%d", tenantID, sessionID)
			return nil, fmt.Errorf("%w: session_id=%d", ErrConcurrentUpdate, sessionID)
		}
		if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionFinished) {
			s.logger.Error("[CancelSession] Failed: tenant_id=%d, session_id=%d, error=%v", tenantID, sessionID, err)
		}
		return nil, err
	}

	s.logger.Info("[CancelSession] Session cancelled: tenant_id=%d, session_id=%d", tenantID, sessionID)

	// Событие публикуется после коммита, доставка best-effort
	event := events.SessionCancelledEvent{
		TenantID:     tenantID,
		SessionID:    sessionID,
		SessionTitle: result.Title,
		StartsAt:     result.StartTime.Format(time.RFC3339),
		CancelledAt:  result.CancelledAt.Format(time.RFC3339),
	}
	if err := s.publisher.Publish(ctx, events.QueueSessionCancelled, event); err != nil {
		s.logger.Warn("[CancelSession] Failed to publish event: session_id=%d, error=%v", sessionID, err)
	}

	return models.FromDomainSession(result), nil
}

// ToggleVisibility инвертирует публичность занятия
// Текущее значение флага читается внутри транзакции
func (s *Service) ToggleVisibility(ctx context.Context, tenantID, sessionID int64) (*models.SessionResponse, error) {
	var result *domain.Session

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		session, err := s.sessionRepo.GetByID(txCtx, tenantID, sessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return fmt.Errorf("%w: tenant_id=%d, session_id=%d", ErrSessionNotFound, tenantID, sessionID)
			}
			return fmt.Errorf("%w: ToggleVisibility - get session: %v", ErrInternal, err)
		}

		if session.IsTerminal() {
			return fmt.Errorf("%w: session_id=%d, status=%s", ErrSessionFinished, session.ID, session.Status)
		}

		if err := s.sessionRepo.SetVisibility(txCtx, tenantID, sessionID, !session.IsPublic); err != nil {
			return fmt.Errorf("%w: ToggleVisibility - set visibility: %v", ErrInternal, err)
		}

		session.IsPublic = !session.IsPublic
		result = session
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			return nil, fmt.Errorf("%w: session_id=%d", ErrConcurrentUpdate, sessionID)
		}
		if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionFinished) {
			s.logger.Error("[ToggleVisibility] Failed: tenant_id=%d, session_id=%d, error=%v", tenantID, sessionID, err)
		}
		return nil, err
	}

	s.logger.Info("[ToggleVisibility] Session visibility changed: tenant_id=%d, session_id=%d, is_public=%t",
		tenantID, sessionID, result.IsPublic)

	return models.FromDomainSession(result), nil
}

// ListWaitlist возвращает лист ожидания занятия в порядке позиций
func (s *Service) ListWaitlist(ctx context.Context, tenantID, sessionID int64) (*models.WaitlistResponse, error) {
	if _, err := s.sessionRepo.GetByID(ctx, tenantID, sessionID); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: tenant_id=%d, session_id=%d", ErrSessionNotFound, tenantID, sessionID)
		}
		s.logger.Error("[ListWaitlist] Failed to get session: tenant_id=%d, session_id=%d, error=%v", tenantID, sessionID, err)
		return nil, fmt.Errorf("%w: ListWaitlist: %v", ErrInternal, err)
	}

	entries, err := s.waitlistRepo.ListBySession(ctx, tenantID, sessionID)
	if err != nil {
		s.logger.Error("[ListWaitlist] Failed to list waitlist: tenant_id=%d, session_id=%d, error=%v", tenantID, sessionID, err)
		return nil, fmt.Errorf("%w: ListWaitlist: %v", ErrInternal, err)
	}

	return models.FromDomainWaitlist(entries), nil
}

// validateStatus проверяет значение фильтра статуса
func validateStatus(status string) error {
	switch domain.SessionStatus(status) {
	case domain.SessionStatusOpen, domain.SessionStatusFull,
		domain.SessionStatusCancelled, domain.SessionStatusCompleted:
		return nil
	default:
		return fmt.Errorf("%w: unknown session status %q", ErrInvalidInput, status)
	}
}
