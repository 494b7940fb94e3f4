package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/internal/infra/storage/sessiontype"
	"github.com/m04kA/SMC-GroupSessionService/internal/service/catalog/models"
)

// --- in-memory фейки ---

type fakeTypeRepo struct {
	nextID int64
	types  map[int64]*domain.SessionType
}

func newFakeTypeRepo(types ...*domain.SessionType) *fakeTypeRepo {
	repo := &fakeTypeRepo{types: map[int64]*domain.SessionType{}}
	for _, t := range types {
		repo.types[t.ID] = t
		if t.ID > repo.nextID {
			repo.nextID = t.ID
		}
	}
	return repo
}

func (f *fakeTypeRepo) Create(_ context.Context, sessionType *domain.SessionType) (*domain.SessionType, error) {
	f.nextID++
	sessionType.ID = f.nextID
	f.types[sessionType.ID] = sessionType
	return sessionType, nil
}

func (f *fakeTypeRepo) GetByID(_ context.Context, tenantID, id int64) (*domain.SessionType, error) {
	t, ok := f.types[id]
	if !ok || t.TenantID != tenantID {
		return nil, fmt.Errorf("%w: id=%d", sessiontype.ErrTypeNotFound, id)
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTypeRepo) List(_ context.Context, tenantID int64, activeOnly bool) ([]*domain.SessionType, error) {
	var result []*domain.SessionType
	for _, t := range f.types {
		if t.TenantID != tenantID {
			continue
		}
		if activeOnly && !t.Active {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (f *fakeTypeRepo) Update(_ context.Context, sessionType *domain.SessionType) error {
	t, ok := f.types[sessionType.ID]
	if !ok || t.TenantID != sessionType.TenantID {
		return fmt.Errorf("%w: id=%d", sessiontype.ErrTypeNotFound, sessionType.ID)
	}
	f.types[sessionType.ID] = sessionType
	return nil
}

func (f *fakeTypeRepo) Delete(_ context.Context, tenantID, id int64) error {
	t, ok := f.types[id]
	if !ok || t.TenantID != tenantID {
		return fmt.Errorf("%w: id=%d", sessiontype.ErrTypeNotFound, id)
	}
	delete(f.types, id)
	return nil
}

type fakeSessionCounter struct {
	activeByType map[int64]int
}

func (f *fakeSessionCounter) CountActiveByTypeID(_ context.Context, _, typeID int64) (int, error) {
	return f.activeByType[typeID], nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

func yogaType() *domain.SessionType {
	return &domain.SessionType{
		ID:              1,
		TenantID:        1,
		Name:            "Йога для начинающих",
		MinParticipants: 2,
		MaxParticipants: 12,
		PricePerPerson:  500,
		DurationMinutes: 60,
		Active:          true,
	}
}

// --- тесты ---

func TestCreateType(t *testing.T) {
	repo := newFakeTypeRepo()
	svc := NewService(repo, &fakeSessionCounter{}, noopLogger{})

	resp, err := svc.CreateType(context.Background(), &models.CreateTypeRequest{
		TenantID:        1,
		Name:            "Гончарный мастер-класс",
		MinParticipants: 1,
		MaxParticipants: 8,
		PricePerPerson:  1500,
		DurationMinutes: 90,
	})

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.True(t, resp.Active)
	assert.Equal(t, 90, resp.DurationMinutes)
}

func TestCreateType_ValidationFailed(t *testing.T) {
	svc := NewService(newFakeTypeRepo(), &fakeSessionCounter{}, noopLogger{})

	_, err := svc.CreateType(context.Background(), &models.CreateTypeRequest{
		TenantID:        1,
		Name:            "Короткое занятие",
		MinParticipants: 1,
		MaxParticipants: 5,
		DurationMinutes: 5, // короче минимальной длительности
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetType_NotFound(t *testing.T) {
	svc := NewService(newFakeTypeRepo(), &fakeSessionCounter{}, noopLogger{})

	_, err := svc.GetType(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrTypeNotFound)
}

func TestGetType_TenantIsolation(t *testing.T) {
	svc := NewService(newFakeTypeRepo(yogaType()), &fakeSessionCounter{}, noopLogger{})

	_, err := svc.GetType(context.Background(), 2, 1)

	assert.ErrorIs(t, err, ErrTypeNotFound)
}

func TestListTypes_ActiveOnly(t *testing.T) {
	inactive := yogaType()
	inactive.ID = 2
	inactive.Name = "Закрытая программа"
	inactive.Active = false

	svc := NewService(newFakeTypeRepo(yogaType(), inactive), &fakeSessionCounter{}, noopLogger{})

	all, err := svc.ListTypes(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Len(t, all.SessionTypes, 2)

	active, err := svc.ListTypes(context.Background(), 1, true)
	require.NoError(t, err)
	require.Len(t, active.SessionTypes, 1)
	assert.Equal(t, "Йога для начинающих", active.SessionTypes[0].Name)
}

func TestUpdateType(t *testing.T) {
	repo := newFakeTypeRepo(yogaType())
	svc := NewService(repo, &fakeSessionCounter{}, noopLogger{})

	resp, err := svc.UpdateType(context.Background(), &models.UpdateTypeRequest{
		TenantID:        1,
		TypeID:          1,
		Name:            "Йога продвинутый уровень",
		MinParticipants: 2,
		MaxParticipants: 10,
		PricePerPerson:  700,
		DurationMinutes: 75,
		Active:          true,
	})

	require.NoError(t, err)
	assert.Equal(t, "Йога продвинутый уровень", resp.Name)
	assert.Equal(t, 10, resp.MaxParticipants)
	assert.Equal(t, "Йога продвинутый уровень", repo.types[1].Name)
}

func TestUpdateType_ValidationFailed(t *testing.T) {
	svc := NewService(newFakeTypeRepo(yogaType()), &fakeSessionCounter{}, noopLogger{})

	_, err := svc.UpdateType(context.Background(), &models.UpdateTypeRequest{
		TenantID:        1,
		TypeID:          1,
		Name:            "Йога",
		MinParticipants: 5,
		MaxParticipants: 2, // max < min
		PricePerPerson:  500,
		DurationMinutes: 60,
		Active:          true,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteType(t *testing.T) {
	repo := newFakeTypeRepo(yogaType())
	svc := NewService(repo, &fakeSessionCounter{activeByType: map[int64]int{}}, noopLogger{})

	err := svc.DeleteType(context.Background(), 1, 1)

	require.NoError(t, err)
	assert.Empty(t, repo.types)
}

func TestDeleteType_InUse(t *testing.T) {
	repo := newFakeTypeRepo(yogaType())
	counter := &fakeSessionCounter{activeByType: map[int64]int{1: 3}}
	svc := NewService(repo, counter, noopLogger{})

	err := svc.DeleteType(context.Background(), 1, 1)

	assert.ErrorIs(t, err, ErrTypeInUse)
	assert.Len(t, repo.types, 1)
}

func TestDeleteType_NotFound(t *testing.T) {
	svc := NewService(newFakeTypeRepo(), &fakeSessionCounter{}, noopLogger{})

	err := svc.DeleteType(context.Background(), 1, 42)

	assert.ErrorIs(t, err, ErrTypeNotFound)
}
