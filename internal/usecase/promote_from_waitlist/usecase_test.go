package promote_from_waitlist

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/session"
	waitlistRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/waitlist"
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
	entries map[int64]*domain.WaitlistEntry
}

func (f *fakeWaitlistRepo) GetByID(_ context.Context, tenantID, sessionID, id int64) (*domain.WaitlistEntry, error) {
	e, ok := f.entries[id]
	if !ok || e.TenantID != tenantID || e.SessionID != sessionID {
		return nil, fmt.Errorf("%w: id=%d", waitlistRepo.ErrEntryNotFound, id)
	}
	copied := *e
	return &copied, nil
}

func (f *fakeWaitlistRepo) GetFirst(_ context.Context, tenantID, sessionID int64) (*domain.WaitlistEntry, error) {
	var first *domain.WaitlistEntry
	for _, e := range f.entries {
		if e.TenantID != tenantID || e.SessionID != sessionID {
			continue
		}
		if first == nil || e.Position < first.Position {
			first = e
		}
	}
	if first == nil {
		return nil, fmt.Errorf("%w: session_id=%d", waitlistRepo.ErrEmptyWaitlist, sessionID)
	}
	copied := *first
	return &copied, nil
}

func (f *fakeWaitlistRepo) Delete(_ context.Context, tenantID, sessionID, id int64) error {
	e, ok := f.entries[id]
	if !ok || e.TenantID != tenantID || e.SessionID != sessionID {
		return fmt.Errorf("%w: id=%d", waitlistRepo.ErrEntryNotFound, id)
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeWaitlistRepo) Renumber(_ context.Context, tenantID, sessionID int64) error {
	var remaining []*domain.WaitlistEntry
	for _, e := range f.entries {
		if e.TenantID == tenantID && e.SessionID == sessionID {
			remaining = append(remaining, e)
		}
	}
	sort.Slice(remaining, func(i, j int) bool { return remaining[i].Position < remaining[j].Position })
	for i, e := range remaining {
		e.Position = i + 1
	}
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func sessionWithSeats(current, max int) *domain.Session {
	status := domain.SessionStatusOpen
	if current >= max {
		status = domain.SessionStatusFull
	}
	return &domain.Session{
		ID:                  100,
		TenantID:            1,
		Title:               "Гончарный мастер-класс",
		MaxParticipants:     max,
		CurrentParticipants: current,
		Status:              status,
	}
}

func waitlistWith(names ...string) *fakeWaitlistRepo {
	repo := &fakeWaitlistRepo{entries: map[int64]*domain.WaitlistEntry{}}
	for i, name := range names {
		id := int64(i + 1)
		repo.entries[id] = &domain.WaitlistEntry{
			ID:        id,
			TenantID:  1,
			SessionID: 100,
			Name:      name,
			Position:  i + 1,
		}
	}
	return repo
}

// --- тесты ---

func TestExecute_PromotesFirstInQueue(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: sessionWithSeats(9, 10)}}
	waitlist := waitlistWith("Первый", "Второй", "Третий")
	participants := &fakeParticipantRepo{}
	publisher := &noopPublisher{}

	uc := NewUseCase(sessions, participants, waitlist, passthroughTxManager{}, publisher, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, SessionID: 100})

	require.NoError(t, err)
	assert.Equal(t, "Первый", resp.Name)
	assert.Equal(t, 1, resp.FromPosition)
	assert.Equal(t, string(domain.ParticipantStatusConfirmed), resp.Status)

	// участник создан, счетчик увеличен, занятие стало full
	require.Len(t, participants.created, 1)
	assert.Equal(t, 10, sessions.sessions[100].CurrentParticipants)
	assert.Equal(t, domain.SessionStatusFull, sessions.sessions[100].Status)

	// очередь перенумерована без пропусков
	positions := map[string]int{}
	for _, e := range waitlist.entries {
		positions[e.Name] = e.Position
	}
	assert.Equal(t, map[string]int{"Второй": 1, "Третий": 2}, positions)

	assert.Equal(t, []string{"session.waitlist.promoted"}, publisher.published)
}

func TestExecute_PromotesExplicitEntry(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: sessionWithSeats(5, 10)}}
	waitlist := waitlistWith("Первый", "Второй", "Третий")

	uc := NewUseCase(sessions, &fakeParticipantRepo{}, waitlist, passthroughTxManager{}, &noopPublisher{}, noopLogger{})

	entryID := int64(2)
	resp, err := uc.Execute(context.Background(), &Request{TenantID: 1, SessionID: 100, EntryID: &entryID})

	require.NoError(t, err)
	assert.Equal(t, "Второй", resp.Name)
	assert.Equal(t, 2, resp.FromPosition)

	positions := map[string]int{}
	for _, e := range waitlist.entries {
		positions[e.Name] = e.Position
	}
	assert.Equal(t, map[string]int{"Первый": 1, "Третий": 2}, positions)
}

func TestExecute_NoFreeSeats(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: sessionWithSeats(10, 10)}}
	waitlist := waitlistWith("Первый")

	uc := NewUseCase(sessions, &fakeParticipantRepo{}, waitlist, passthroughTxManager{}, &noopPublisher{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, SessionID: 100})

	assert.ErrorIs(t, err, ErrSessionFull)
	assert.Len(t, waitlist.entries, 1)
}

func TestExecute_EmptyWaitlist(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: sessionWithSeats(5, 10)}}
	waitlist := waitlistWith()

	uc := NewUseCase(sessions, &fakeParticipantRepo{}, waitlist, passthroughTxManager{}, &noopPublisher{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, SessionID: 100})

	assert.ErrorIs(t, err, ErrWaitlistEmpty)
}

func TestExecute_EntryNotFound(t *testing.T) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: sessionWithSeats(5, 10)}}
	waitlist := waitlistWith("Первый")

	uc := NewUseCase(sessions, &fakeParticipantRepo{}, waitlist, passthroughTxManager{}, &noopPublisher{}, noopLogger{})

	entryID := int64(99)
	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, SessionID: 100, EntryID: &entryID})

	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestExecute_FinishedSessionRejected(t *testing.T) {
	s := sessionWithSeats(5, 10)
	s.Status = domain.SessionStatusCancelled
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{100: s}}
	waitlist := waitlistWith("Первый")

	uc := NewUseCase(sessions, &fakeParticipantRepo{}, waitlist, passthroughTxManager{}, &noopPublisher{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, SessionID: 100})

	assert.ErrorIs(t, err, ErrSessionFinished)
}
