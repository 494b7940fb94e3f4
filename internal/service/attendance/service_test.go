package attendance

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

func (f *fakeParticipantRepo) UpdateStatus(_ context.Context, tenantID, sessionID, id int64, status domain.ParticipantStatus) error {
	p, ok := f.participants[id]
	if !ok || p.TenantID != tenantID || p.SessionID != sessionID {
		return fmt.Errorf("%w: id=%d", participantRepo.ErrParticipantNotFound, id)
	}
	p.Status = status
	return nil
}

func (f *fakeParticipantRepo) CheckInAllConfirmed(_ context.Context, tenantID, sessionID int64) (int64, error) {
	var count int64
	for _, p := range f.participants {
		if p.TenantID == tenantID && p.SessionID == sessionID && p.Status == domain.ParticipantStatusConfirmed {
			p.Status = domain.ParticipantStatusCheckedIn
			count++
		}
	}
	return count, nil
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

func newTestService(sessionStatus domain.SessionStatus, statuses ...domain.ParticipantStatus) (*Service, *fakeParticipantRepo) {
	sessions := &fakeSessionRepo{sessions: map[int64]*domain.Session{
		100: {ID: 100, TenantID: 1, Status: sessionStatus, MaxParticipants: 10},
	}}

	participants := &fakeParticipantRepo{participants: map[int64]*domain.Participant{}}
	for i, status := range statuses {
		id := int64(i + 1)
		participants.participants[id] = &domain.Participant{
			ID:        id,
			TenantID:  1,
			SessionID: 100,
			Name:      fmt.Sprintf("Участник %d", id),
			Status:    status,
		}
	}

	return NewService(sessions, participants, passthroughTxManager{}, noopLogger{}), participants
}

// --- тесты ---

func TestCheckIn_MarksConfirmedParticipant(t *testing.T) {
	svc, participants := newTestService(domain.SessionStatusOpen, domain.ParticipantStatusConfirmed)

	resp, err := svc.CheckIn(context.Background(), 1, 100, 1)

	require.NoError(t, err)
	assert.Equal(t, string(domain.ParticipantStatusCheckedIn), resp.Status)
	assert.Equal(t, domain.ParticipantStatusCheckedIn, participants.participants[1].Status)
}

func TestCheckIn_RepeatIsIdempotent(t *testing.T) {
	svc, _ := newTestService(domain.SessionStatusOpen, domain.ParticipantStatusCheckedIn)

	resp, err := svc.CheckIn(context.Background(), 1, 100, 1)

	require.NoError(t, err)
	assert.Equal(t, string(domain.ParticipantStatusCheckedIn), resp.Status)
}

func TestCheckIn_NoShowConflict(t *testing.T) {
	svc, participants := newTestService(domain.SessionStatusOpen, domain.ParticipantStatusNoShow)

	_, err := svc.CheckIn(context.Background(), 1, 100, 1)

	assert.ErrorIs(t, err, ErrAttendanceConflict)
	assert.Equal(t, domain.ParticipantStatusNoShow, participants.participants[1].Status)
}

func TestMarkNoShow_CheckedInConflict(t *testing.T) {
	svc, _ := newTestService(domain.SessionStatusOpen, domain.ParticipantStatusCheckedIn)

	_, err := svc.MarkNoShow(context.Background(), 1, 100, 1)

	assert.ErrorIs(t, err, ErrAttendanceConflict)
}

func TestMarkNoShow_MarksConfirmedParticipant(t *testing.T) {
	svc, participants := newTestService(domain.SessionStatusOpen, domain.ParticipantStatusConfirmed)

	resp, err := svc.MarkNoShow(context.Background(), 1, 100, 1)

	require.NoError(t, err)
	assert.Equal(t, string(domain.ParticipantStatusNoShow), resp.Status)
	assert.Equal(t, domain.ParticipantStatusNoShow, participants.participants[1].Status)
}

func TestCheckIn_CancelledSessionRejected(t *testing.T) {
	svc, _ := newTestService(domain.SessionStatusCancelled, domain.ParticipantStatusConfirmed)

	_, err := svc.CheckIn(context.Background(), 1, 100, 1)

	assert.ErrorIs(t, err, ErrSessionCancelled)
}

func TestCheckIn_CompletedSessionAllowed(t *testing.T) {
	// отметка посещаемости после завершения занятия допустима
	svc, _ := newTestService(domain.SessionStatusCompleted, domain.ParticipantStatusConfirmed)

	resp, err := svc.CheckIn(context.Background(), 1, 100, 1)

	require.NoError(t, err)
	assert.Equal(t, string(domain.ParticipantStatusCheckedIn), resp.Status)
}

func TestCheckIn_ParticipantNotFound(t *testing.T) {
	svc, _ := newTestService(domain.SessionStatusOpen)

	_, err := svc.CheckIn(context.Background(), 1, 100, 99)

	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestCheckIn_SessionNotFound(t *testing.T) {
	svc, _ := newTestService(domain.SessionStatusOpen)

	_, err := svc.CheckIn(context.Background(), 1, 999, 1)

	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCheckInAll_MarksOnlyConfirmed(t *testing.T) {
	svc, participants := newTestService(domain.SessionStatusOpen,
		domain.ParticipantStatusConfirmed,
		domain.ParticipantStatusConfirmed,
		domain.ParticipantStatusNoShow,
		domain.ParticipantStatusCheckedIn,
	)

	resp, err := svc.CheckInAll(context.Background(), 1, 100)

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.CheckedIn)

	// no_show не затронут
	assert.Equal(t, domain.ParticipantStatusNoShow, participants.participants[3].Status)
}

func TestCheckInAll_CancelledSessionRejected(t *testing.T) {
	svc, _ := newTestService(domain.SessionStatusCancelled, domain.ParticipantStatusConfirmed)

	_, err := svc.CheckInAll(context.Background(), 1, 100)

	assert.ErrorIs(t, err, ErrSessionCancelled)
}

func TestCheckInAll_EmptySession(t *testing.T) {
	svc, _ := newTestService(domain.SessionStatusOpen)

	resp, err := svc.CheckInAll(context.Background(), 1, 100)

	require.NoError(t, err)
	assert.Zero(t, resp.CheckedIn)
}
