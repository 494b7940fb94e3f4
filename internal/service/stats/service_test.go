package stats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/internal/service/stats/models"
)

// --- in-memory фейки ---

type fakeStatsRepo struct {
	summary      *domain.SessionsSummary
	popularTypes []*domain.TypePopularity
	calls        int
}

func (f *fakeStatsRepo) Summary(_ context.Context, _ domain.StatsFilter) (*domain.SessionsSummary, error) {
	f.calls++
	return f.summary, nil
}

func (f *fakeStatsRepo) PopularTypes(_ context.Context, _ domain.StatsFilter) ([]*domain.TypePopularity, error) {
	f.calls++
	return f.popularTypes, nil
}

type fakeCache struct {
	store   map[string][]byte
	readErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	if f.readErr != nil {
		return false, f.readErr
	}
	raw, ok := f.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.store[key] = raw
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

func summaryFixture() *domain.SessionsSummary {
	return &domain.SessionsSummary{
		TotalSessions:     20,
		CompletedSessions: 15,
		CancelledSessions: 2,
		TotalParticipants: 140,
		TotalRevenue:      70000,
		AverageOccupancy:  0.7,
	}
}

// --- тесты ---

func TestSummary_CacheMissThenHit(t *testing.T) {
	repo := &fakeStatsRepo{summary: summaryFixture()}
	cache := newFakeCache()
	svc := NewService(repo, cache, noopLogger{})

	req := &models.SummaryRequest{TenantID: 1}

	first, err := svc.Summary(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 20, first.TotalSessions)
	assert.Equal(t, 1, repo.calls)

	// повторный запрос обслуживается из кеша
	second, err := svc.Summary(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)
}

func TestSummary_CacheKeyIncludesPeriod(t *testing.T) {
	repo := &fakeStatsRepo{summary: summaryFixture()}
	cache := newFakeCache()
	svc := NewService(repo, cache, noopLogger{})

	_, err := svc.Summary(context.Background(), &models.SummaryRequest{TenantID: 1})
	require.NoError(t, err)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Summary(context.Background(), &models.SummaryRequest{TenantID: 1, StartDate: &from})
	require.NoError(t, err)

	// разные периоды - разные ключи, репозиторий вызван дважды
	assert.Equal(t, 2, repo.calls)
	assert.Len(t, cache.store, 2)
}

func TestSummary_CacheFailureFallsThroughToRepo(t *testing.T) {
	repo := &fakeStatsRepo{summary: summaryFixture()}
	cache := newFakeCache()
	cache.readErr = errors.New("connection refused")
	svc := NewService(repo, cache, noopLogger{})

	resp, err := svc.Summary(context.Background(), &models.SummaryRequest{TenantID: 1})

	require.NoError(t, err)
	assert.Equal(t, 20, resp.TotalSessions)
	assert.Equal(t, 1, repo.calls)
}

func TestSummary_InvalidPeriod(t *testing.T) {
	svc := NewService(&fakeStatsRepo{}, newFakeCache(), noopLogger{})

	start := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	_, err := svc.Summary(context.Background(), &models.SummaryRequest{
		TenantID:  1,
		StartDate: &start,
		EndDate:   &end,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPopularTypes(t *testing.T) {
	repo := &fakeStatsRepo{popularTypes: []*domain.TypePopularity{
		{SessionTypeID: 10, TypeName: "Гончарный мастер-класс", SessionCount: 8, ParticipantCount: 60, Revenue: 90000},
		{SessionTypeID: 11, TypeName: "Йога для начинающих", SessionCount: 12, ParticipantCount: 100, Revenue: 50000},
	}}
	svc := NewService(repo, newFakeCache(), noopLogger{})

	resp, err := svc.PopularTypes(context.Background(), &models.SummaryRequest{TenantID: 1})

	require.NoError(t, err)
	require.Len(t, resp.Types, 2)
	assert.Equal(t, "Гончарный мастер-класс", resp.Types[0].TypeName)
	assert.Equal(t, 90000.0, resp.Types[0].Revenue)
}
