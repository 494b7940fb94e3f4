package models

import (
	"time"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
)

// SummaryRequest запрос сводной статистики за период
type SummaryRequest struct {
	TenantID  int64
	StartDate *time.Time
	EndDate   *time.Time
}

// SummaryResponse сводная статистика по занятиям
type SummaryResponse struct {
	TotalSessions     int     `json:"totalSessions"`
	CompletedSessions int     `json:"completedSessions"`
	CancelledSessions int     `json:"cancelledSessions"`
	TotalParticipants int     `json:"totalParticipants"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOccupancy  float64 `json:"averageOccupancy"`
}

// TypePopularityResponse популярность одного типа занятий
type TypePopularityResponse struct {
	SessionTypeID    int64   `json:"sessionTypeId"`
	TypeName         string  `json:"typeName"`
	SessionCount     int     `json:"sessionCount"`
	ParticipantCount int     `json:"participantCount"`
	Revenue          float64 `json:"revenue"`
}

// PopularTypesResponse типы занятий, отсортированные по выручке
type PopularTypesResponse struct {
	Types []TypePopularityResponse `json:"types"`
}

// ToFilter конвертирует запрос в доменный фильтр
func (r *SummaryRequest) ToFilter() domain.StatsFilter {
	return domain.StatsFilter{
		TenantID:  r.TenantID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// FromDomainSummary конвертирует доменную сводку в DTO
func FromDomainSummary(s *domain.SessionsSummary) *SummaryResponse {
	if s == nil {
		return nil
	}

	return &SummaryResponse{
		TotalSessions:     s.TotalSessions,
		CompletedSessions: s.CompletedSessions,
		CancelledSessions: s.CancelledSessions,
		TotalParticipants: s.TotalParticipants,
		TotalRevenue:      s.TotalRevenue,
		AverageOccupancy:  s.AverageOccupancy,
	}
}

// FromDomainPopularTypes конвертирует список популярности типов в DTO
func FromDomainPopularTypes(types []*domain.TypePopularity) *PopularTypesResponse {
	resp := &PopularTypesResponse{
		Types: make([]TypePopularityResponse, 0, len(types)),
	}

	for _, t := range types {
		resp.Types = append(resp.Types, TypePopularityResponse{
			SessionTypeID:    t.SessionTypeID,
			TypeName:         t.TypeName,
			SessionCount:     t.SessionCount,
			ParticipantCount: t.ParticipantCount,
			Revenue:          t.Revenue,
		})
	}

	return resp
}
