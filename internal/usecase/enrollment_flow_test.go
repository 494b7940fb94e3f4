package usecase

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	participantRepoPkg "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/participant"
	sessionRepoPkg "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/session"
	waitlistRepoPkg "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-GroupSessionService/internal/usecase/add_participant"
	"github.com/m04kA/SMC-GroupSessionService/internal/usecase/promote_from_waitlist"
	"github.com/m04kA/SMC-GroupSessionService/internal/usecase/remove_participant"
)

// Сценарный тест полного жизненного цикла записи: запись до заполнения,
// переполнение в лист ожидания, снятие участника без авто-продвижения,
// явное продвижение из очереди

type enrollmentState struct {
	session           *domain.Session
	participants      map[int64]*domain.Participant
	waitlist          map[int64]*domain.WaitlistEntry
	nextParticipantID int64
	nextEntryID       int64
}

func newEnrollmentState(maxParticipants int) *enrollmentState {
	return &enrollmentState{
		session: &domain.Session{
			ID:                  100,
			TenantID:            1,
			SessionTypeID:       10,
			Title:               "Гончарный мастер-класс",
			StartTime:           time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
			EndTime:             time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC),
			MaxParticipants:     maxParticipants,
			CurrentParticipants: 0,
			Status:              domain.SessionStatusOpen,
			IsPublic:            true,
			PricePerPerson:      1500,
		},
		participants: make(map[int64]*domain.Participant),
		waitlist:     make(map[int64]*domain.WaitlistEntry),
	}
}

type stateSessionRepo struct{ st *enrollmentState }

func (r *stateSessionRepo) GetByID(_ context.Context, tenantID, id int64) (*domain.Session, error) {
	if r.st.session.ID != id || r.st.session.TenantID != tenantID {
		return nil, fmt.Errorf("%w: id=%d", sessionRepoPkg.ErrSessionNotFound, id)
	}
	cp := *r.st.session
	return &cp, nil
}

func (r *stateSessionRepo) UpdateEnrollment(_ context.Context, tenantID, id int64, currentParticipants int, status domain.SessionStatus) error {
	if r.st.session.ID != id || r.st.session.TenantID != tenantID {
		return fmt.Errorf("%w: id=%d", sessionRepoPkg.ErrSessionNotFound, id)
	}
	r.st.session.CurrentParticipants = currentParticipants
	r.st.session.Status = status
	return nil
}

type stateParticipantRepo struct{ st *enrollmentState }

func (r *stateParticipantRepo) Create(_ context.Context, p *domain.Participant) (*domain.Participant, error) {
	r.st.nextParticipantID++
	cp := *p
	cp.ID = r.st.nextParticipantID
	cp.CreatedAt = time.Now()
	r.st.participants[cp.ID] = &cp
	return &cp, nil
}

func (r *stateParticipantRepo) GetByID(_ context.Context, tenantID, sessionID, id int64) (*domain.Participant, error) {
	p, ok := r.st.participants[id]
	if !ok || p.TenantID != tenantID || p.SessionID != sessionID {
		return nil, fmt.Errorf("%w: id=%d", participantRepoPkg.ErrParticipantNotFound, id)
	}
	cp := *p
	return &cp, nil
}

func (r *stateParticipantRepo) Delete(_ context.Context, tenantID, sessionID, id int64) error {
	p, ok := r.st.participants[id]
	if !ok || p.TenantID != tenantID || p.SessionID != sessionID {
		return fmt.Errorf("%w: id=%d", participantRepoPkg.ErrParticipantNotFound, id)
	}
	delete(r.st.participants, id)
	return nil
}

type stateWaitlistRepo struct{ st *enrollmentState }

func (r *stateWaitlistRepo) Create(_ context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	r.st.nextEntryID++
	cp := *e
	cp.ID = r.st.nextEntryID
	cp.CreatedAt = time.Now()
	r.st.waitlist[cp.ID] = &cp
	return &cp, nil
}

func (r *stateWaitlistRepo) MaxPosition(_ context.Context, tenantID, sessionID int64) (int, error) {
	max := 0
	for _, e := range r.st.waitlist {
		if e.TenantID == tenantID && e.SessionID == sessionID && e.Position > max {
			max = e.Position
		}
	}
	return max, nil
}

func (r *stateWaitlistRepo) GetByID(_ context.Context, tenantID, sessionID, id int64) (*domain.WaitlistEntry, error) {
	e, ok := r.st.waitlist[id]
	if !ok || e.TenantID != tenantID || e.SessionID != sessionID {
		return nil, fmt.Errorf("%w: id=%d", waitlistRepoPkg.ErrEntryNotFound, id)
	}
	cp := *e
	return &cp, nil
}

func (r *stateWaitlistRepo) GetFirst(_ context.Context, tenantID, sessionID int64) (*domain.WaitlistEntry, error) {
	var first *domain.WaitlistEntry
	for _, e := range r.st.waitlist {
		if e.TenantID != tenantID || e.SessionID != sessionID {
			continue
		}
		if first == nil || e.Position < first.Position {
			first = e
		}
	}
	if first == nil {
		return nil, fmt.Errorf("%w: session_id=%d", waitlistRepoPkg.ErrEmptyWaitlist, sessionID)
	}
	cp := *first
	return &cp, nil
}

func (r *stateWaitlistRepo) Delete(_ context.Context, tenantID, sessionID, id int64) error {
	e, ok := r.st.waitlist[id]
	if !ok || e.TenantID != tenantID || e.SessionID != sessionID {
		return fmt.Errorf("%w: id=%d", waitlistRepoPkg.ErrEntryNotFound, id)
	}
	delete(r.st.waitlist, id)
	return nil
}

func (r *stateWaitlistRepo) Renumber(_ context.Context, tenantID, sessionID int64) error {
	var entries []*domain.WaitlistEntry
	for _, e := range r.st.waitlist {
		if e.TenantID == tenantID && e.SessionID == sessionID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Position < entries[j].Position })
	for i, e := range entries {
		e.Position = i + 1
	}
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopPublisher struct{ queues []string }

func (p *noopPublisher) Publish(_ context.Context, queue string, _ interface{}) error {
	p.queues = append(p.queues, queue)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestEnrollmentLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newEnrollmentState(2)

	sessionRepo := &stateSessionRepo{st}
	participantRepo := &stateParticipantRepo{st}
	waitlistRepo := &stateWaitlistRepo{st}
	txMgr := passthroughTxManager{}
	publisher := &noopPublisher{}
	log := noopLogger{}

	addUC := add_participant.NewUseCase(sessionRepo, participantRepo, waitlistRepo, nil, txMgr, publisher, log)
	removeUC := remove_participant.NewUseCase(sessionRepo, participantRepo, txMgr, log)
	promoteUC := promote_from_waitlist.NewUseCase(sessionRepo, participantRepo, waitlistRepo, txMgr, publisher, log)

	// Анна занимает первое место
	respA, err := addUC.Execute(ctx, &add_participant.Request{
		TenantID: 1, SessionID: 100, Name: "Анна", Paid: true,
	})
	require.NoError(t, err)
	require.True(t, respA.Enrolled)
	assert.Equal(t, 1, st.session.CurrentParticipants)
	assert.Equal(t, domain.SessionStatusOpen, st.session.Status)

	// Борис занимает последнее место, занятие заполняется
	respB, err := addUC.Execute(ctx, &add_participant.Request{
		TenantID: 1, SessionID: 100, Name: "Борис",
	})
	require.NoError(t, err)
	require.True(t, respB.Enrolled)
	assert.Equal(t, 2, st.session.CurrentParticipants)
	assert.Equal(t, domain.SessionStatusFull, st.session.Status)

	// Вера не помещается и встает в лист ожидания
	respC, err := addUC.Execute(ctx, &add_participant.Request{
		TenantID: 1, SessionID: 100, Name: "Вера",
	})
	require.NoError(t, err)
	require.False(t, respC.Enrolled)
	require.NotNil(t, respC.WaitlistEntry)
	assert.Equal(t, 1, respC.WaitlistEntry.Position)
	assert.Equal(t, 2, st.session.CurrentParticipants)

	// Борис снимается: место освобождается, но Вера остается в очереди
	err = removeUC.Execute(ctx, &remove_participant.Request{
		TenantID: 1, SessionID: 100, ParticipantID: respB.Participant.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, st.session.CurrentParticipants)
	assert.Equal(t, domain.SessionStatusOpen, st.session.Status)
	assert.Len(t, st.waitlist, 1)

	// Явное продвижение забирает Веру из очереди на свободное место
	promoted, err := promoteUC.Execute(ctx, &promote_from_waitlist.Request{
		TenantID: 1, SessionID: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "Вера", promoted.Name)
	assert.Equal(t, 1, promoted.FromPosition)
	assert.Equal(t, 2, st.session.CurrentParticipants)
	assert.Equal(t, domain.SessionStatusFull, st.session.Status)
	assert.Empty(t, st.waitlist)

	assert.Equal(t, []string{
		"session.participant.enrolled",
		"session.participant.enrolled",
		"session.waitlist.added",
		"session.waitlist.promoted",
	}, publisher.queues)
}
