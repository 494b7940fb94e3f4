package remove_participant

import (
	"context"
	"errors"
	"fmt"

	participantRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/participant"
	sessionRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/session"
	"github.com/m04kA/SMC-GroupSessionService/pkg/txmanager"
)

// UseCase use case снятия участника с занятия
type UseCase struct {
	sessionRepo     SessionRepository
	participantRepo ParticipantRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	participantRepo ParticipantRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Request модель запроса на снятие участника
type Request struct {
	TenantID      int64
	SessionID     int64
	ParticipantID int64
}

// Execute снимает участника с занятия
// Участник удаляется, счетчик уменьшается, full занятие снова становится open.
// Освободившееся место НЕ раздается из листа ожидания автоматически:
// продвижение - отдельная явная операция
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("RemoveParticipant: tenant=%d, session=%d, participant=%d",
		req.TenantID, req.SessionID, req.ParticipantID)

	if req.TenantID <= 0 || req.SessionID <= 0 || req.ParticipantID <= 0 {
		return fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		session, err := uc.sessionRepo.GetByID(txCtx, req.TenantID, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return fmt.Errorf("%w: tenant_id=%d, session_id=%d", ErrSessionNotFound, req.TenantID, req.SessionID)
			}
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		if session.IsTerminal() {
			return fmt.Errorf("%w: session_id=%d, status=%s", ErrSessionFinished, session.ID, session.Status)
		}

		if _, err := uc.participantRepo.GetByID(txCtx, req.TenantID, req.SessionID, req.ParticipantID); err != nil {
			if errors.Is(err, participantRepo.ErrParticipantNotFound) {
				return fmt.Errorf("%w: tenant_id=%d, session_id=%d, participant_id=%d",
					ErrParticipantNotFound, req.TenantID, req.SessionID, req.ParticipantID)
			}
			return fmt.Errorf("%w: failed to get participant: %v", ErrInternal, err)
		}

		if err := uc.participantRepo.Delete(txCtx, req.TenantID, req.SessionID, req.ParticipantID); err != nil {
			return fmt.Errorf("%w: failed to delete participant: %v", ErrInternal, err)
		}

		newCount := session.CurrentParticipants - 1
		if newCount < 0 {
			newCount = 0
		}

		if err := uc.sessionRepo.UpdateEnrollment(txCtx, req.TenantID, req.SessionID,
			newCount, session.StatusForCount(newCount)); err != nil {
			return fmt.Errorf("%w: failed to update enrollment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("RemoveParticipant: concurrent update: session_id=%d", req.SessionID)
			return fmt.Errorf("%w: session_id=%d", ErrConcurrentUpdate, req.SessionID)
		}
		return err
	}

	uc.logger.Info("RemoveParticipant: participant id=%d removed from session=%d", req.ParticipantID, req.SessionID)

	return nil
}
