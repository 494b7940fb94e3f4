package domain

import "time"

// RecurrencePattern шаблон повторения занятий
type RecurrencePattern string

const (
	RecurrenceDaily    RecurrencePattern = "daily"
	RecurrenceWeekly   RecurrencePattern = "weekly"
	RecurrenceBiweekly RecurrencePattern = "biweekly"
	RecurrenceMonthly  RecurrencePattern = "monthly"
)

// ParseRecurrencePattern валидирует и конвертирует строку в шаблон повторения
func ParseRecurrencePattern(s string) (RecurrencePattern, error) {
	switch RecurrencePattern(s) {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly:
		return RecurrencePattern(s), nil
	default:
		return "", ErrInvalidRecurrencePattern
	}
}

// RecurrenceSchedule вычисляет времена начала серии повторяющихся занятий
// Чистая функция: i-е занятие сдвигается от start согласно шаблону.
// monthly сдвигает на календарный месяц (5 января -> 5 февраля),
// а не на фиксированное число дней
func RecurrenceSchedule(start time.Time, pattern RecurrencePattern, count int) []time.Time {
	if count <= 0 {
		return []time.Time{}
	}

	schedule := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		switch pattern {
		case RecurrenceDaily:
			schedule = append(schedule, start.AddDate(0, 0, i))
		case RecurrenceWeekly:
			schedule = append(schedule, start.AddDate(0, 0, i*7))
		case RecurrenceBiweekly:
			schedule = append(schedule, start.AddDate(0, 0, i*14))
		case RecurrenceMonthly:
			schedule = append(schedule, start.AddDate(0, i, 0))
		}
	}

	return schedule
}
