package remove_participant

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	participantRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/participant"
	sessionRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/session"
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
	participants map[int64]*domain.Participant
}

func (f *fakeParticipantRepo) GetByID(_ context.Context, tenantID, sessionID, id int64) (*domain.Participant, error) {
	p, ok := f.participants[id]
	if !ok || p.TenantID != tenantID || p.SessionID != sessionID {
		return nil, fmt.Errorf("%w: id=%d", participantRepo.ErrParticipantNotFound, id)
	}
	copied := *p
	return &copied, nil
}

func (f *fakeParticipantRepo) Delete(_ context.Context, tenantID, sessionID, id int64) error {
	p, ok := f.participants[id]
	if !ok || p.TenantID != tenantID || p.SessionID != sessionID {
		return fmt.Errorf("%w: id=%d", participantRepo.ErrParticipantNotFound, id)
	}
	delete(f.participants, id)
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

func newFixture(current, max int, status domain.SessionStatus) (*UseCase, *fakeSessionRepo, *fakeParticipantRepo) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{
		100: {ID: 100, TenantID: 1, MaxParticipants: max, CurrentParticipants: current, Status: status},
	}}
	participants := &fakeParticipantRepo{participants: map[int64]*domain.Participant{
		1: {ID: 1, TenantID: 1, SessionID: 100, Name: "Иван", Status: domain.ParticipantStatusConfirmed},
	}}

	uc := NewUseCase(sessions, participants, passthroughTxManager{}, noopLogger{})
	return uc, sessions, participants
}

// --- тесты ---

func TestExecute_RemovesParticipantAndDecrements(t *testing.T) {
	uc, sessions, participants := newFixture(4, 10, domain.SessionStatusOpen)

	err := uc.Execute(context.Background(), &Request{TenantID: 1, SessionID: 100, ParticipantID: 1})

	require.NoError(t, err)
	assert.Empty(t, participants.participants)
	assert.Equal(t, 3, sessions.sessions[100].CurrentParticipants)
	assert.Equal(t, domain.SessionStatusOpen, sessions.sessions[100].Status)
}

func TestExecute_FullSessionReopens(t *testing.T) {
	uc, sessions, _ := newFixture(10, 10, domain.SessionStatusFull)

	err := uc.Execute(context.Background(), &Request{TenantID: 1, SessionID: 100, ParticipantID: 1})

	require.NoError(t, err)
	assert.Equal(t, 9, sessions.sessions[100].CurrentParticipants)
	assert.Equal(t, domain.SessionStatusOpen, sessions.sessions[100].Status)
}

func TestExecute_ParticipantNotFound(t *testing.T) {
	uc, sessions, _ := newFixture(4, 10, domain.SessionStatusOpen)

	err := uc.Execute(context.Background(), &Request{TenantID: 1, SessionID: 100, ParticipantID: 99})

	assert.ErrorIs(t, err, ErrParticipantNotFound)
	assert.Equal(t, 4, sessions.sessions[100].CurrentParticipants)
}

func TestExecute_SessionNotFound(t *testing.T) {
	uc, _, _ := newFixture(4, 10, domain.SessionStatusOpen)

	err := uc.Execute(context.Background(), &Request{TenantID: 1, SessionID: 999, ParticipantID: 1})

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_TerminalSessionRejected(t *testing.T) {
	for _, status := range []domain.SessionStatus{domain.SessionStatusCancelled, domain.SessionStatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			uc, _, participants := newFixture(4, 10, status)

			err := uc.Execute(context.Background(), &Request{TenantID: 1, SessionID: 100, ParticipantID: 1})

			assert.ErrorIs(t, err, ErrSessionFinished)
			assert.Len(t, participants.participants, 1)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _, _ := newFixture(4, 10, domain.SessionStatusOpen)

	err := uc.Execute(context.Background(), &Request{TenantID: 0, SessionID: 100, ParticipantID: 1})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
