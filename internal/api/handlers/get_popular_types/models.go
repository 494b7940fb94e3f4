package get_popular_types

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/internal/service/stats/models"
)

// parseQuery разбирает период отчета из query-параметров
// Даты в формате YYYY-MM-DD, endDate включает весь день
func parseQuery(query url.Values, tenantID int64) (*models.SummaryRequest, error) {
	req := &models.SummaryRequest{
		TenantID: tenantID,
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate %q", raw)
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q", raw)
		}
		endOfDay := endDate.Add(24*time.Hour - time.Nanosecond)
		req.EndDate = &endOfDay
	}

	return req, nil
}
