package add_participant

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/session"
	customerClient "github.com/m04kA/SMC-GroupSessionService/internal/integrations/customerservice"
	"github.com/m04kA/SMC-GroupSessionService/pkg/ptr"
	"github.com/m04kA/SMC-GroupSessionService/pkg/txmanager"
)

// --- in-memory фейки ---

type fakeSessionRepo struct {
	sessions map[int64]*domain.Session
}

func (f *fakeSessionRepo) GetByID(_ context.Context, tenantID, id int64) (*domain.Session, error) {
	s, ok := f.sessions[id]
	if !ok || s.TenantID != tenantID {
		return nil, fmt.Errorf("%w: id=%d", sessionRepo.ErrSessionNotFound, id)
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) UpdateEnrollment(_ context.Context, tenantID, id int64, currentParticipants int, status domain.SessionStatus) error {
	s, ok := f.sessions[id]
	if !ok || s.TenantID != tenantID {
		return fmt.Errorf("%w: id=%d", sessionRepo.ErrSessionNotFound, id)
	}
	s.CurrentParticipants = currentParticipants
	s.Status = status
	return nil
}

type fakeParticipantRepo struct {
	nextID  int64
	created []*domain.Participant
}

func (f *fakeParticipantRepo) Create(_ context.Context, p *domain.Participant) (*domain.Participant, error) {
	f.nextID++
	p.ID = f.nextID
	f.created = append(f.created, p)
	return p, nil
}

type fakeWaitlistRepo struct {
	nextID  int64
	entries []*domain.WaitlistEntry
}

func (f *fakeWaitlistRepo) Create(_ context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	f.nextID++
	e.ID = f.nextID
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeWaitlistRepo) MaxPosition(_ context.Context, _, sessionID int64) (int, error) {
	max := 0
	for _, e := range f.entries {
		if e.SessionID == sessionID && e.Position > max {
			max = e.Position
		}
	}
	return max, nil
}

type fakeCustomerClient struct {
	customers map[int64]*customerClient.Customer
}

func (f *fakeCustomerClient) GetCustomer(_ context.Context, _, customerID int64) (*customerClient.Customer, error) {
	c, ok := f.customers[customerID]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", customerClient.ErrCustomerNotFound, customerID)
	}
	return c, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type failingTxManager struct{}

func (failingTxManager) DoSerializable(context.Context, func(ctx context.Context) error) error {
	return txmanager.ErrSerializationFailure
}

type noopPublisher struct {
	published []string
}

func (p *noopPublisher) Publish(_ context.Context, queue string, _ interface{}) error {
	p.published = append(p.published, queue)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

func openSession(current, max int) *domain.Session {
	return &domain.Session{
		ID:                  100,
		TenantID:            1,
		SessionTypeID:       10,
		Title:               "Йога для начинающих",
		MaxParticipants:     max,
		CurrentParticipants: current,
		Status:              domain.SessionStatusOpen,
	}
}

func newTestUseCase(sessions *fakeSessionRepo) (*UseCase, *fakeParticipantRepo, *fakeWaitlistRepo, *noopPublisher) {
	participants := &fakeParticipantRepo{}
	waitlist := &fakeWaitlistRepo{}
	publisher := &noopPublisher{}
	customers := &fakeCustomerClient{customers: map[int64]*customerClient.Customer{
		42: {ID: 42, TenantID: 1, Name: "Анна Смирнова", Email: ptr.Ptr("anna@example.com")},
	}}

	uc := NewUseCase(sessions, participants, waitlist, customers, passthroughTxManager{}, publisher, noopLogger{})
	return uc, participants, waitlist, publisher
}

// --- тесты ---

func TestExecute_EnrollsWalkInWhenSeatAvailable(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: openSession(3, 10)}}
	uc, participants, _, publisher := newTestUseCase(sessions)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:  1,
		SessionID: 100,
		Name:      "Иван Петров",
		Phone:     ptr.Ptr("+79990001122"),
	})

	require.NoError(t, err)
	require.True(t, resp.Enrolled)
	require.NotNil(t, resp.Participant)
	assert.Nil(t, resp.WaitlistEntry)
	assert.Equal(t, "Иван Петров", resp.Participant.Name)
	assert.Equal(t, string(domain.ParticipantStatusConfirmed), resp.Participant.Status)

	assert.Len(t, participants.created, 1)
	assert.Equal(t, 4, sessions.sessions[100].CurrentParticipants)
	assert.Equal(t, domain.SessionStatusOpen, sessions.sessions[100].Status)
	assert.Equal(t, []string{"session.participant.enrolled"}, publisher.published)
}

func TestExecute_DenormalizesCustomerContacts(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: openSession(0, 10)}}
	uc, participants, _, _ := newTestUseCase(sessions)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:   1,
		SessionID:  100,
		CustomerID: ptr.Ptr(int64(42)),
	})

	require.NoError(t, err)
	require.True(t, resp.Enrolled)
	assert.Equal(t, "Анна Смирнова", resp.Participant.Name)
	require.NotNil(t, resp.Participant.Email)
	assert.Equal(t, "anna@example.com", *resp.Participant.Email)
	assert.Equal(t, ptr.Ptr(int64(42)), participants.created[0].CustomerID)
}

func TestExecute_LastSeatMarksSessionFull(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: openSession(9, 10)}}
	uc, _, _, _ := newTestUseCase(sessions)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:  1,
		SessionID: 100,
		Name:      "Последний участник",
	})

	require.NoError(t, err)
	assert.True(t, resp.Enrolled)
	assert.Equal(t, 10, sessions.sessions[100].CurrentParticipants)
	assert.Equal(t, domain.SessionStatusFull, sessions.sessions[100].Status)
}

func TestExecute_FullSessionQueuesToWaitlist(t *testing.T) {
	full := openSession(10, 10)
	full.Status = domain.SessionStatusFull
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: full}}
	uc, participants, waitlist, publisher := newTestUseCase(sessions)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID:  1,
		SessionID: 100,
		Name:      "Мария",
	})

	require.NoError(t, err)
	assert.False(t, resp.Enrolled)
	assert.Nil(t, resp.Participant)
	require.NotNil(t, resp.WaitlistEntry)
	assert.Equal(t, 1, resp.WaitlistEntry.Position)

	assert.Empty(t, participants.created)
	assert.Len(t, waitlist.entries, 1)
	assert.Equal(t, 10, sessions.sessions[100].CurrentParticipants)
	assert.Equal(t, []string{"session.waitlist.added"}, publisher.published)
}

func TestExecute_WaitlistPositionsGrowWithoutGaps(t *testing.T) {
	full := openSession(10, 10)
	full.Status = domain.SessionStatusFull
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: full}}
	uc, _, waitlist, _ := newTestUseCase(sessions)

	for i, name := range []string{"Первый", "Второй", "Третий"} {
		resp, err := uc.Execute(context.Background(), &Request{
			TenantID:  1,
			SessionID: 100,
			Name:      name,
		})
		require.NoError(t, err)
		assert.Equal(t, i+1, resp.WaitlistEntry.Position)
	}

	require.Len(t, waitlist.entries, 3)
}

func TestExecute_SessionNotFound(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{}}
	uc, _, _, _ := newTestUseCase(sessions)

	_, err := uc.Execute(context.Background(), &Request{
		TenantID:  1,
		SessionID: 999,
		Name:      "Иван",
	})

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_TenantIsolation(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: openSession(0, 10)}}
	uc, _, _, _ := newTestUseCase(sessions)

	_, err := uc.Execute(context.Background(), &Request{
		TenantID:  2, // чужой тенант
		SessionID: 100,
		Name:      "Иван",
	})

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_FinishedSessionRejected(t *testing.T) {
	for _, status := range []domain.SessionStatus{domain.SessionStatusCancelled, domain.SessionStatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			s := openSession(0, 10)
			s.Status = status
			sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: s}}
			uc, _, _, _ := newTestUseCase(sessions)

			_, err := uc.Execute(context.Background(), &Request{
				TenantID:  1,
				SessionID: 100,
				Name:      "Иван",
			})

			assert.ErrorIs(t, err, ErrSessionFinished)
		})
	}
}

func TestExecute_CustomerNotFound(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: openSession(0, 10)}}
	uc, _, _, _ := newTestUseCase(sessions)

	_, err := uc.Execute(context.Background(), &Request{
		TenantID:   1,
		SessionID:  100,
		CustomerID: ptr.Ptr(int64(777)),
	})

	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_MissingIdentityRejected(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: openSession(0, 10)}}
	uc, _, _, _ := newTestUseCase(sessions)

	_, err := uc.Execute(context.Background(), &Request{
		TenantID:  1,
		SessionID: 100,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_SerializationFailureMapsToConcurrentUpdate(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: openSession(0, 10)}}
	customers := &fakeCustomerClient{customers: map[int64]*customerClient.Customer{}}

	uc := NewUseCase(sessions, &fakeParticipantRepo{}, &fakeWaitlistRepo{}, customers,
		failingTxManager{}, &noopPublisher{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		TenantID:  1,
		SessionID: 100,
		Name:      "Иван",
	})

	assert.ErrorIs(t, err, ErrConcurrentUpdate)
}

// lockingTxManager имитирует serializable изоляцию, выполняя транзакции строго по очереди
type lockingTxManager struct{ mu sync.Mutex }

func (m *lockingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type lockedPublisher struct {
	mu     sync.Mutex
	queues []string
}

func (p *lockedPublisher) Publish(_ context.Context, queue string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queues = append(p.queues, queue)
	return nil
}

func TestExecute_ConcurrentAddsNeverOverbook(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: openSession(0, 3)}}
	customers := &fakeCustomerClient{customers: map[int64]*customerClient.Customer{}}

	uc := NewUseCase(sessions, &fakeParticipantRepo{}, &fakeWaitlistRepo{}, customers,
		&lockingTxManager{}, &lockedPublisher{}, noopLogger{})

	const attempts = 10

	var wg sync.WaitGroup
	results := make([]*Response, attempts)
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = uc.Execute(context.Background(), &Request{
				TenantID:  1,
				SessionID: 100,
				Name:      fmt.Sprintf("Гость %d", i+1),
			})
		}(i)
	}
	wg.Wait()

	enrolled := 0
	var positions []int
	for i := range results {
		require.NoError(t, errs[i])
		if results[i].Enrolled {
			enrolled++
		} else {
			positions = append(positions, results[i].WaitlistEntry.Position)
		}
	}

	assert.Equal(t, 3, enrolled)

	s := sessions.sessions[100]
	assert.Equal(t, 3, s.CurrentParticipants)
	assert.Equal(t, domain.SessionStatusFull, s.Status)

	// очередь без пропусков и дубликатов
	sort.Ints(positions)
	require.Len(t, positions, attempts-3)
	for i, pos := range positions {
		assert.Equal(t, i+1, pos)
	}
}
