package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/internal/service/stats/models"
)

// Service сервис агрегированной статистики
// Отчеты кешируются в Redis, небольшое отставание от БД допустимо
type Service struct {
	statsRepo StatsRepository
	cache     Cache
	logger    Logger
}

// NewService создает новый сервис статистики
func NewService(statsRepo StatsRepository, cache Cache, logger Logger) *Service {
	return &Service{
		statsRepo: statsRepo,
		cache:     cache,
		logger:    logger,
	}
}

// Summary возвращает сводную статистику по занятиям за период
func (s *Service) Summary(ctx context.Context, req *models.SummaryRequest) (*models.SummaryResponse, error) {
	if err := validatePeriod(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	key := cacheKey("summary", req.TenantID, req.StartDate, req.EndDate)

	var cached models.SummaryResponse
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		s.logger.Warn("[Summary] Cache read failed: tenant_id=%d, error=%v", req.TenantID, err)
	} else if hit {
		return &cached, nil
	}

	summary, err := s.statsRepo.Summary(ctx, req.ToFilter())
	if err != nil {
		s.logger.Error("[Summary] Failed to aggregate summary: tenant_id=%d, error=%v", req.TenantID, err)
		return nil, fmt.Errorf("%w: Summary: %v", ErrInternal, err)
	}

	resp := models.FromDomainSummary(summary)

	if err := s.cache.SetJSON(ctx, key, resp); err != nil {
		s.logger.Warn("[Summary] Cache write failed: tenant_id=%d, error=%v", req.TenantID, err)
	}

	return resp, nil
}

// PopularTypes возвращает типы занятий за период, отсортированные по выручке
func (s *Service) PopularTypes(ctx context.Context, req *models.SummaryRequest) (*models.PopularTypesResponse, error) {
	if err := validatePeriod(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	key := cacheKey("popular-types", req.TenantID, req.StartDate, req.EndDate)

	var cached models.PopularTypesResponse
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		s.logger.Warn("[PopularTypes] Cache read failed: tenant_id=%d, error=%v", req.TenantID, err)
	} else if hit {
		return &cached, nil
	}

	types, err := s.statsRepo.PopularTypes(ctx, req.ToFilter())
	if err != nil {
		s.logger.Error("[PopularTypes] Failed to aggregate popularity: tenant_id=%d, error=%v", req.TenantID, err)
		return nil, fmt.Errorf("%w: PopularTypes: %v", ErrInternal, err)
	}

	resp := models.FromDomainPopularTypes(types)

	if err := s.cache.SetJSON(ctx, key, resp); err != nil {
		s.logger.Warn("[PopularTypes] Cache write failed: tenant_id=%d, error=%v", req.TenantID, err)
	}

	return resp, nil
}

// validatePeriod проверяет, что период отчета корректен
func validatePeriod(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}
	return nil
}

// cacheKey собирает ключ кеша отчета с учетом тенанта и периода
func cacheKey(report string, tenantID int64, start, end *time.Time) string {
	from, to := "-", "-"
	if start != nil {
		from = start.Format(domain.DateFormat)
	}
	if end != nil {
		to = end.Format(domain.DateFormat)
	}
	return fmt.Sprintf("stats:%s:%d:%s:%s", report, tenantID, from, to)
}
