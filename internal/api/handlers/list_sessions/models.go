package list_sessions

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
	"github.com/m04kA/SMC-GroupSessionService/internal/service/schedule/models"
)

// parseQuery разбирает query-параметры фильтра списка занятий
// Даты в формате YYYY-MM-DD, endDate включает весь день
func parseQuery(query url.Values, tenantID int64) (*models.ListSessionsRequest, error) {
	req := &models.ListSessionsRequest{
		TenantID:   tenantID,
		PublicOnly: query.Get("publicOnly") == "true",
	}

	if raw := query.Get("typeId"); raw != "" {
		typeID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || typeID <= 0 {
			return nil, fmt.Errorf("invalid typeId %q", raw)
		}
		req.SessionTypeID = &typeID
	}

	if raw := query.Get("hostId"); raw != "" {
		hostID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || hostID <= 0 {
			return nil, fmt.Errorf("invalid hostId %q", raw)
		}
		req.HostID = &hostID
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
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
