package mark_participants_paid

import (
	"context"
	"errors"
	"fmt"

	sessionRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/session"
)

// UseCase use case массовой отметки оплаты участников
type UseCase struct {
	sessionRepo     SessionRepository
	participantRepo ParticipantRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sessionRepo SessionRepository, participantRepo ParticipantRepository, logger Logger) *UseCase {
	return &UseCase{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		logger:          logger,
	}
}

// Request модель запроса на отметку оплаты
type Request struct {
	TenantID       int64
	SessionID      int64
	ParticipantIDs []int64
}

// Response количество обновленных участников
// Несуществующие id молча пропускаются - операция best-effort
type Response struct {
	Updated int64
}

// Execute отмечает участников занятия как оплативших
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MarkParticipantsPaid: tenant=%d, session=%d, participants=%d",
		req.TenantID, req.SessionID, len(req.ParticipantIDs))

	if req.TenantID <= 0 || req.SessionID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}
	if len(req.ParticipantIDs) == 0 {
		return nil, fmt.Errorf("%w: participantIds must not be empty", ErrInvalidInput)
	}
	for _, id := range req.ParticipantIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: participant ids must be positive", ErrInvalidInput)
		}
	}

	if _, err := uc.sessionRepo.GetByID(ctx, req.TenantID, req.SessionID); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("MarkParticipantsPaid: session id=%d not found", req.SessionID)
			return nil, fmt.Errorf("%w: tenant_id=%d, session_id=%d", ErrSessionNotFound, req.TenantID, req.SessionID)
		}
		uc.logger.Error("MarkParticipantsPaid: failed to get session id=%d: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	updated, err := uc.participantRepo.MarkPaid(ctx, req.TenantID, req.SessionID, req.ParticipantIDs)
	if err != nil {
		uc.logger.Error("MarkParticipantsPaid: failed to mark paid: session_id=%d, error=%v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to mark paid: %v", ErrInternal, err)
	}

	uc.logger.Info("MarkParticipantsPaid: marked %d of %d participants, session=%d",
		updated, len(req.ParticipantIDs), req.SessionID)

	return &Response{Updated: updated}, nil
}
