package promote_from_waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/internal/infra/events"
	sessionRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/session"
	waitlistRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-GroupSessionService/pkg/txmanager"
)

// UseCase use case продвижения из листа ожидания
type UseCase struct {
	sessionRepo     SessionRepository
	participantRepo ParticipantRepository
	waitlistRepo    WaitlistRepository
	txManager       TransactionManager
	publisher       EventPublisher
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	participantRepo ParticipantRepository,
	waitlistRepo WaitlistRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		waitlistRepo:    waitlistRepo,
		txManager:       txManager,
		publisher:       publisher,
		logger:          logger,
	}
}

// Request модель запроса на продвижение из листа ожидания
// EntryID nil - продвигается первый в очереди (FIFO)
type Request struct {
	TenantID  int64
	SessionID int64
	EntryID   *int64
}

// Response модель ответа с продвинутым участником
type Response struct {
	ParticipantID int64
	SessionID     int64
	CustomerID    *int64
	Name          string
	Email         *string
	Phone         *string
	Status        string
	FromPosition  int
	CreatedAt     time.Time
}

// Execute продвигает запись листа ожидания на свободное место
// Наличие места перепроверяется под блокировкой занятия: продвижение
// всегда явное, освобождение места само по себе очередь не двигает.
// Оставшиеся позиции перенумеровываются в непрерывную последовательность 1..N
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PromoteFromWaitlist: tenant=%d, session=%d, entry=%v", req.TenantID, req.SessionID, req.EntryID)

	if req.TenantID <= 0 || req.SessionID <= 0 {
		return nil, fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}
	if req.EntryID != nil && *req.EntryID <= 0 {
		return nil, fmt.Errorf("%w: entryId must be positive", ErrInvalidInput)
	}

	var (
		promoted     *domain.Participant
		fromPosition int
		session      *domain.Session
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.sessionRepo.GetByID(txCtx, req.TenantID, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return fmt.Errorf("%w: tenant_id=%d, session_id=%d", ErrSessionNotFound, req.TenantID, req.SessionID)
			}
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}
		session = current

		if current.IsTerminal() {
			return fmt.Errorf("%w: session_id=%d, status=%s", ErrSessionFinished, current.ID, current.Status)
		}

		if !current.HasFreeSeat() {
			return fmt.Errorf("%w: session_id=%d, %d/%d", ErrSessionFull,
				current.ID, current.CurrentParticipants, current.MaxParticipants)
		}

		// Выбираем запись: явную или первую в очереди
		var entry *domain.WaitlistEntry
		if req.EntryID != nil {
			entry, err = uc.waitlistRepo.GetByID(txCtx, req.TenantID, req.SessionID, *req.EntryID)
			if err != nil {
				if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
					return fmt.Errorf("%w: entry_id=%d", ErrEntryNotFound, *req.EntryID)
				}
				return fmt.Errorf("%w: failed to get waitlist entry: %v", ErrInternal, err)
			}
		} else {
			entry, err = uc.waitlistRepo.GetFirst(txCtx, req.TenantID, req.SessionID)
			if err != nil {
				if errors.Is(err, waitlistRepo.ErrEmptyWaitlist) {
					return fmt.Errorf("%w: session_id=%d", ErrWaitlistEmpty, req.SessionID)
				}
				return fmt.Errorf("%w: failed to get first waitlist entry: %v", ErrInternal, err)
			}
		}
		fromPosition = entry.Position

		// Конвертируем запись в подтвержденного участника
		created, err := uc.participantRepo.Create(txCtx, entry.ToParticipant())
		if err != nil {
			return fmt.Errorf("%w: failed to create participant: %v", ErrInternal, err)
		}

		if err := uc.waitlistRepo.Delete(txCtx, req.TenantID, req.SessionID, entry.ID); err != nil {
			return fmt.Errorf("%w: failed to delete waitlist entry: %v", ErrInternal, err)
		}

		// Позиции остаются непрерывными 1..N
		if err := uc.waitlistRepo.Renumber(txCtx, req.TenantID, req.SessionID); err != nil {
			return fmt.Errorf("%w: failed to renumber waitlist: %v", ErrInternal, err)
		}

		newCount := current.CurrentParticipants + 1
		if err := uc.sessionRepo.UpdateEnrollment(txCtx, req.TenantID, req.SessionID,
			newCount, current.StatusForCount(newCount)); err != nil {
			return fmt.Errorf("%w: failed to update enrollment: %v", ErrInternal, err)
		}

		promoted = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("PromoteFromWaitlist: concurrent update: session_id=%d", req.SessionID)
			return nil, fmt.Errorf("%w: session_id=%d", ErrConcurrentUpdate, req.SessionID)
		}
		return nil, err
	}

	uc.logger.Info("PromoteFromWaitlist: promoted participant id=%d from position=%d, session=%d",
		promoted.ID, fromPosition, req.SessionID)

	// Событие публикуется после коммита, доставка best-effort
	event := events.WaitlistPromotedEvent{
		TenantID:      promoted.TenantID,
		SessionID:     promoted.SessionID,
		ParticipantID: promoted.ID,
		CustomerID:    promoted.CustomerID,
		Name:          promoted.Name,
		SessionTitle:  session.Title,
		StartsAt:      session.StartTime.Format(time.RFC3339),
		PromotedAt:    time.Now().Format(time.RFC3339),
	}
	if err := uc.publisher.Publish(ctx, events.QueueWaitlistPromoted, event); err != nil {
		uc.logger.Warn("PromoteFromWaitlist: failed to publish event: session_id=%d, error=%v", req.SessionID, err)
	}

	return &Response{
		ParticipantID: promoted.ID,
		SessionID:     promoted.SessionID,
		CustomerID:    promoted.CustomerID,
		Name:          promoted.Name,
		Email:         promoted.Email,
		Phone:         promoted.Phone,
		Status:        string(promoted.Status),
		FromPosition:  fromPosition,
		CreatedAt:     promoted.CreatedAt,
	}, nil
}
