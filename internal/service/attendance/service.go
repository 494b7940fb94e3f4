package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	participantRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/participant"
	sessionRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/session"
	"github.com/m04kA/SMC-GroupSessionService/internal/service/attendance/models"
	"github.com/m04kA/SMC-GroupSessionService/pkg/txmanager"
)

// Service сервис учета посещаемости занятий
type Service struct {
	sessionRepo     SessionRepository
	participantRepo ParticipantRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый сервис посещаемости
func NewService(
	sessionRepo SessionRepository,
	participantRepo ParticipantRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// CheckIn отмечает участника как пришедшего
// Повторная отметка того же статуса - no-op
func (s *Service) CheckIn(ctx context.Context, tenantID, sessionID, participantID int64) (*models.ParticipantResponse, error) {
	return s.markAttendance(ctx, tenantID, sessionID, participantID, domain.ParticipantStatusCheckedIn, "CheckIn")
}

// MarkNoShow отмечает участника как не пришедшего
// Повторная отметка того же статуса - no-op
func (s *Service) MarkNoShow(ctx context.Context, tenantID, sessionID, participantID int64) (*models.ParticipantResponse, error) {
	return s.markAttendance(ctx, tenantID, sessionID, participantID, domain.ParticipantStatusNoShow, "MarkNoShow")
}

// CheckInAll отмечает всех подтвержденных участников занятия как пришедших
// Участники с уже зафиксированной посещаемостью не затрагиваются
func (s *Service) CheckInAll(ctx context.Context, tenantID, sessionID int64) (*models.CheckInAllResponse, error) {
	var checkedIn int64

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		session, err := s.sessionRepo.GetByID(txCtx, tenantID, sessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return fmt.Errorf("%w: tenant_id=%d, session_id=%d", ErrSessionNotFound, tenantID, sessionID)
			}
			return fmt.Errorf("%w: CheckInAll - get session: %v", ErrInternal, err)
		}

		if session.Status == domain.SessionStatusCancelled {
			return fmt.Errorf("%w: session_id=%d", ErrSessionCancelled, sessionID)
		}

		count, err := s.participantRepo.CheckInAllConfirmed(txCtx, tenantID, sessionID)
		if err != nil {
			return fmt.Errorf("%w: CheckInAll - update participants: %v", ErrInternal, err)
		}

		checkedIn = count
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			s.logger.Warn("[CheckInAll] Concurrent update: tenant_id=%d, session_id=%d", tenantID, sessionID)
			return nil, fmt.Errorf("%w: session_id=%d", ErrConcurrentUpdate, sessionID)
		}
		if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionCancelled) {
			s.logger.Error("[CheckInAll] Failed: tenant_id=%d, session_id=%d, error=%v", tenantID, sessionID, err)
		}
		return nil, err
	}

	s.logger.Info("[CheckInAll] Checked in confirmed participants: tenant_id=%d, session_id=%d, count=%d",
		tenantID, sessionID, checkedIn)

	return &models.CheckInAllResponse{CheckedIn: checkedIn}, nil
}

// markAttendance переводит участника в терминальный статус посещаемости
// под блокировкой строки занятия
func (s *Service) markAttendance(
	ctx context.Context,
	tenantID, sessionID, participantID int64,
	target domain.ParticipantStatus,
	op string,
) (*models.ParticipantResponse, error) {
	var result *domain.Participant

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		session, err := s.sessionRepo.GetByID(txCtx, tenantID, sessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return fmt.Errorf("%w: tenant_id=%d, session_id=%d", ErrSessionNotFound, tenantID, sessionID)
			}
			return fmt.Errorf("%w: %s - get session: %v", ErrInternal, op, err)
		}

		if session.Status == domain.SessionStatusCancelled {
			return fmt.Errorf("%w: session_id=%d", ErrSessionCancelled, sessionID)
		}

		participant, err := s.participantRepo.GetByID(txCtx, tenantID, sessionID, participantID)
		if err != nil {
			if errors.Is(err, participantRepo.ErrParticipantNotFound) {
				return fmt.Errorf("%w: tenant_id=%d, session_id=%d, participant_id=%d",
					ErrParticipantNotFound, tenantID, sessionID, participantID)
			}
			return fmt.Errorf("%w: %s - get participant: %v", ErrInternal, op, err)
		}

		// Повторная отметка того же статуса идемпотентна
		if participant.Status == target {
			result = participant
			return nil
		}

		if participant.IsFinalized() {
			return fmt.Errorf("%w: participant_id=%d, status=%s", ErrAttendanceConflict,
				participant.ID, participant.Status)
		}

		if err := s.participantRepo.UpdateStatus(txCtx, tenantID, sessionID, participantID, target); err != nil {
			return fmt.Errorf("%w: %s - update status: %v", ErrInternal, op, err)
		}

		participant.Status = target
		result = participant
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			s.logger.Warn("[%s] Concurrent update: tenant_id=%d, session_id=%d", op, tenantID, sessionID)
			return nil, fmt.Errorf("%w: session_id=%d", ErrConcurrentUpdate, sessionID)
		}
		if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrParticipantNotFound) &&
			!errors.Is(err, ErrSessionCancelled) && !errors.Is(err, ErrAttendanceConflict) {
			s.logger.Error("[%s] Failed: tenant_id=%d, session_id=%d, participant_id=%d, error=%v",
				op, tenantID, sessionID, participantID, err)
		}
		return nil, err
	}

	s.logger.Info("[%s] Attendance marked: tenant_id=%d, session_id=%d, participant_id=%d, status=%s",
		op, tenantID, sessionID, participantID, result.Status)

	return models.FromDomainParticipant(result), nil
}
