package generate_recurring_sessions

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	typeRepo "github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/sessiontype"
	"github.com/m04kA/SMC-GroupSessionService/internal/integrations/staffservice"
)

// --- in-memory фейки ---

type fakeTypeRepo struct {
	types map[int64]*domain.SessionType
}

func (f *fakeTypeRepo) GetByID(_ context.Context, tenantID, id int64) (*domain.SessionType, error) {
	t, ok := f.types[id]
	if !ok || t.TenantID != tenantID {
		return nil, fmt.Errorf("%w: id=%d", typeRepo.ErrTypeNotFound, id)
	}
	return t, nil
}

type fakeSessionRepo struct {
	nextID  int64
	created []*domain.Session
	failAt  int // 0 - без сбоев, N - сбой на N-й вставке
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	if f.failAt > 0 && len(f.created)+1 == f.failAt {
		return nil, errors.New("insert failed")
	}
	f.nextID++
	s.ID = f.nextID
	f.created = append(f.created, s)
	return s, nil
}

type fakeStaffClient struct {
	employees map[int64]*staffservice.Employee
}

func (f *fakeStaffClient) GetEmployee(_ context.Context, _, employeeID int64) (*staffservice.Employee, error) {
	e, ok := f.employees[employeeID]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", staffservice.ErrEmployeeNotFound, employeeID)
	}
	return e, nil
}

// rollbackTxManager имитирует откат: при ошибке fn забывает созданные занятия
type rollbackTxManager struct {
	repo *fakeSessionRepo
}

func (m rollbackTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		m.repo.created = nil
		return err
	}
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

func workshopType(active bool) *fakeTypeRepo {
	return &fakeTypeRepo{types: map[int64]*domain.SessionType{
		10: {
			ID:              10,
			TenantID:        1,
			Name:            "Гончарный мастер-класс",
			MinParticipants: 1,
			MaxParticipants: 8,
			PricePerPerson:  1500,
			DurationMinutes: 120,
			Active:          active,
		},
	}}
}

func validRequest() *Request {
	return &Request{
		TenantID:      1,
		SessionTypeID: 10,
		Title:         "Гончарный круг по понедельникам",
		StartTime:     time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC),
		IsPublic:      true,
		Pattern:       "weekly",
		Occurrences:   4,
	}
}

// --- тесты ---

func TestExecute_GeneratesWeeklySeries(t *testing.T) {
	sessions := &fakeSessionRepo{}
	uc := NewUseCase(workshopType(true), sessions, &fakeStaffClient{}, rollbackTxManager{sessions}, noopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, resp.Sessions, 4)

	// еженедельный шаг и снимок параметров типа
	for i, s := range resp.Sessions {
		expectedStart := time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC).AddDate(0, 0, i*7)
		assert.Equal(t, expectedStart, s.StartTime)
		assert.Equal(t, expectedStart.Add(2*time.Hour), s.EndTime)
		assert.Equal(t, 8, s.MaxParticipants)
		assert.Equal(t, string(domain.SessionStatusOpen), s.Status)
	}

	assert.Equal(t, 1500.0, sessions.created[0].PricePerPerson)
}

func TestExecute_MonthlySeriesIsCalendarAware(t *testing.T) {
	sessions := &fakeSessionRepo{}
	uc := NewUseCase(workshopType(true), sessions, &fakeStaffClient{}, rollbackTxManager{sessions}, noopLogger{})

	req := validRequest()
	req.Pattern = "monthly"
	req.Occurrences = 3

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.Len(t, resp.Sessions, 3)
	assert.Equal(t, time.Date(2026, 2, 5, 18, 0, 0, 0, time.UTC), resp.Sessions[1].StartTime)
	assert.Equal(t, time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC), resp.Sessions[2].StartTime)
}

func TestExecute_FailureRollsBackWholeBatch(t *testing.T) {
	sessions := &fakeSessionRepo{failAt: 3}
	uc := NewUseCase(workshopType(true), sessions, &fakeStaffClient{}, rollbackTxManager{sessions}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, sessions.created)
}

func TestExecute_InactiveTypeRejected(t *testing.T) {
	sessions := &fakeSessionRepo{}
	uc := NewUseCase(workshopType(false), sessions, &fakeStaffClient{}, rollbackTxManager{sessions}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTypeInactive)
}

func TestExecute_TypeNotFound(t *testing.T) {
	sessions := &fakeSessionRepo{}
	uc := NewUseCase(&fakeTypeRepo{types: map[int64]*domain.SessionType{}}, sessions,
		&fakeStaffClient{}, rollbackTxManager{sessions}, noopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrTypeNotFound)
}

func TestExecute_HostNotFound(t *testing.T) {
	sessions := &fakeSessionRepo{}
	uc := NewUseCase(workshopType(true), sessions, &fakeStaffClient{}, rollbackTxManager{sessions}, noopLogger{})

	hostID := int64(999)
	req := validRequest()
	req.HostID = &hostID

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrHostNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Request)
	}{
		{"unknown pattern", func(r *Request) { r.Pattern = "yearly" }},
		{"zero occurrences", func(r *Request) { r.Occurrences = 0 }},
		{"too many occurrences", func(r *Request) { r.Occurrences = domain.MaxRecurrenceOccurrences + 1 }},
		{"empty title", func(r *Request) { r.Title = "" }},
		{"zero start time", func(r *Request) { r.StartTime = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &fakeSessionRepo{}
			uc := NewUseCase(workshopType(true), sessions, &fakeStaffClient{}, rollbackTxManager{sessions}, noopLogger{})

			req := validRequest()
			tt.modify(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, sessions.created)
		})
	}
}
