package domain

import "time"

// StatsFilter период для отчетов
type StatsFilter struct {
	TenantID  int64      // Обязательный параметр
	StartDate *time.Time // Начало периода (опционально)
	EndDate   *time.Time // Конец периода (опционально)
}

// SessionsSummary сводная статистика по занятиям за период
type SessionsSummary struct {
	TotalSessions     int
	CompletedSessions int
	CancelledSessions int
	TotalParticipants int

	// Выручка: цена за человека * количество оплативших или пришедших
	// участников завершенных занятий
	TotalRevenue float64

	// Средняя заполненность не отмененных занятий (0.0 - 1.0)
	AverageOccupancy float64
}

// TypePopularity статистика популярности одного типа занятий
type TypePopularity struct {
	SessionTypeID    int64
	TypeName         string
	SessionCount     int
	ParticipantCount int
	Revenue          float64
}
