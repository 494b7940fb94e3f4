package add_participant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/internal/infra/events"
	sessionRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/session"
	customerClient "github.com/m04kA/SMC-GroupSessionService/internal/integrations/customerservice"
	"github.com/m04kA/SMC-GroupSessionService/pkg/txmanager"
)

// UseCase use case записи участника на занятие
type UseCase struct {
	sessionRepo     SessionRepository
	participantRepo ParticipantRepository
	waitlistRepo    WaitlistRepository
	customerClient  CustomerServiceClient
	txManager       TransactionManager
	publisher       EventPublisher
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	participantRepo ParticipantRepository,
	waitlistRepo WaitlistRepository,
	customerClient CustomerServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:     sessionRepo,
		participantRepo: participantRepo,
		waitlistRepo:    waitlistRepo,
		customerClient:  customerClient,
		txManager:       txManager,
		publisher:       publisher,
		logger:          logger,
	}
}

// Execute выполняет запись участника на занятие
// Проверка вместимости и инкремент счетчика атомарны: выполняются в
// сериализуемой транзакции под блокировкой строки занятия.
// При заполненном занятии участник попадает в лист ожидания - это не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AddParticipant: tenant=%d, session=%d, customer=%v, walk_in=%t",
		req.TenantID, req.SessionID, req.CustomerID, req.CustomerID == nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AddParticipant: validation failed: %v", err)
		return nil, err
	}

	// 2. Резолвим личность: для клиента из справочника денормализуем
	// имя и контакты на момент записи
	identity := req.identity()
	if req.CustomerID != nil {
		customer, err := uc.customerClient.GetCustomer(ctx, req.TenantID, *req.CustomerID)
		if err != nil {
			if errors.Is(err, customerClient.ErrCustomerNotFound) {
				uc.logger.Warn("AddParticipant: customer id=%d not found", *req.CustomerID)
				return nil, fmt.Errorf("%w: customer_id=%d", ErrCustomerNotFound, *req.CustomerID)
			}
			uc.logger.Error("AddParticipant: failed to get customer id=%d: %v", *req.CustomerID, err)
			return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}

		identity.Name = customer.Name
		if identity.Email == nil {
			identity.Email = customer.Email
		}
		if identity.Phone == nil {
			identity.Phone = customer.Phone
		}
	}

	var (
		enrolledParticipant *domain.Participant
		queuedEntry         *domain.WaitlistEntry
		session             *domain.Session
	)

	// 3. Критическая секция: занятие блокируется на время проверки
	// вместимости и записи
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

		if current.HasFreeSeat() {
			// 3.1. Есть место: создаем участника и двигаем счетчик
			participant := &domain.Participant{
				TenantID:   req.TenantID,
				SessionID:  req.SessionID,
				CustomerID: identity.CustomerID,
				Name:       identity.Name,
				Email:      identity.Email,
				Phone:      identity.Phone,
				Status:     domain.ParticipantStatusConfirmed,
				Paid:       req.Paid,
			}

			created, err := uc.participantRepo.Create(txCtx, participant)
			if err != nil {
				return fmt.Errorf("%w: failed to create participant: %v", ErrInternal, err)
			}

			newCount := current.CurrentParticipants + 1
			if err := uc.sessionRepo.UpdateEnrollment(txCtx, req.TenantID, req.SessionID,
				newCount, current.StatusForCount(newCount)); err != nil {
				return fmt.Errorf("%w: failed to update enrollment: %v", ErrInternal, err)
			}

			enrolledParticipant = created
			return nil
		}

		// 3.2. Мест нет: добавляем в хвост листа ожидания
		maxPosition, err := uc.waitlistRepo.MaxPosition(txCtx, req.TenantID, req.SessionID)
		if err != nil {
			return fmt.Errorf("%w: failed to get waitlist position: %v", ErrInternal, err)
		}

		entry := &domain.WaitlistEntry{
			TenantID:   req.TenantID,
			SessionID:  req.SessionID,
			CustomerID: identity.CustomerID,
			Name:       identity.Name,
			Email:      identity.Email,
			Phone:      identity.Phone,
			Position:   maxPosition + 1,
		}

		created, err := uc.waitlistRepo.Create(txCtx, entry)
		if err != nil {
			return fmt.Errorf("%w: failed to create waitlist entry: %v", ErrInternal, err)
		}

		queuedEntry = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("AddParticipant: concurrent update: session_id=%d", req.SessionID)
			return nil, fmt.Errorf("%w: session_id=%d", ErrConcurrentUpdate, req.SessionID)
		}
		return nil, err
	}

	// 4. Публикуем событие после коммита, доставка best-effort
	uc.publishResult(ctx, session, enrolledParticipant, queuedEntry)

	// 5. Формируем ответ
	if enrolledParticipant != nil {
		uc.logger.Info("AddParticipant: enrolled participant id=%d, session=%d", enrolledParticipant.ID, req.SessionID)
		return &Response{
			Enrolled: true,
			Participant: &EnrolledParticipant{
				ID:         enrolledParticipant.ID,
				SessionID:  enrolledParticipant.SessionID,
				CustomerID: enrolledParticipant.CustomerID,
				Name:       enrolledParticipant.Name,
				Email:      enrolledParticipant.Email,
				Phone:      enrolledParticipant.Phone,
				Status:     string(enrolledParticipant.Status),
				Paid:       enrolledParticipant.Paid,
				CreatedAt:  enrolledParticipant.CreatedAt,
			},
		}, nil
	}

	uc.logger.Info("AddParticipant: queued waitlist entry id=%d, position=%d, session=%d",
		queuedEntry.ID, queuedEntry.Position, req.SessionID)
	return &Response{
		Enrolled: false,
		WaitlistEntry: &QueuedEntry{
			ID:         queuedEntry.ID,
			SessionID:  queuedEntry.SessionID,
			CustomerID: queuedEntry.CustomerID,
			Name:       queuedEntry.Name,
			Email:      queuedEntry.Email,
			Phone:      queuedEntry.Phone,
			Position:   queuedEntry.Position,
			CreatedAt:  queuedEntry.CreatedAt,
		},
	}, nil
}

// publishResult публикует событие записи или попадания в лист ожидания
func (uc *UseCase) publishResult(
	ctx context.Context,
	session *domain.Session,
	participant *domain.Participant,
	entry *domain.WaitlistEntry,
) {
	if participant != nil {
		event := events.ParticipantEnrolledEvent{
			TenantID:      participant.TenantID,
			SessionID:     participant.SessionID,
			ParticipantID: participant.ID,
			CustomerID:    participant.CustomerID,
			Name:          participant.Name,
			SessionTitle:  session.Title,
			StartsAt:      session.StartTime.Format(time.RFC3339),
			EnrolledAt:    time.Now().Format(time.RFC3339),
		}
		if err := uc.publisher.Publish(ctx, events.QueueParticipantEnrolled, event); err != nil {
			uc.logger.Warn("AddParticipant: failed to publish enrolled event: session_id=%d, error=%v",
				participant.SessionID, err)
		}
		return
	}

	event := events.WaitlistAddedEvent{
		TenantID:     entry.TenantID,
		SessionID:    entry.SessionID,
		EntryID:      entry.ID,
		CustomerID:   entry.CustomerID,
		Name:         entry.Name,
		Position:     entry.Position,
		SessionTitle: session.Title,
		StartsAt:     session.StartTime.Format(time.RFC3339),
	}
	if err := uc.publisher.Publish(ctx, events.QueueWaitlistAdded, event); err != nil {
		uc.logger.Warn("AddParticipant: failed to publish waitlist event: session_id=%d, error=%v",
			entry.SessionID, err)
	}
}
