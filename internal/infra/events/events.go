// Package events определяет доменные события и их публикацию в RabbitMQ
// Доставка уведомлений участникам выполняется внешними консьюмерами очередей
package events

// Имена очередей доменных событий
const (
	QueueParticipantEnrolled = "session.participant.enrolled"
	QueueWaitlistAdded       = "session.waitlist.added"
	QueueWaitlistPromoted    = "session.waitlist.promoted"
	QueueSessionCancelled    = "session.cancelled"
)

// ParticipantEnrolledEvent публикуется при записи участника на занятие
type ParticipantEnrolledEvent struct {
	TenantID      int64   `json:"tenant_id"`
	SessionID     int64   `json:"session_id"`
	ParticipantID int64   `json:"participant_id"`
	CustomerID    *int64  `json:"customer_id,omitempty"`
	Name          string  `json:"name"`
	SessionTitle  string  `json:"session_title"`
	StartsAt      string  `json:"starts_at"`
	EnrolledAt    string  `json:"enrolled_at"`
}

// WaitlistAddedEvent публикуется при попадании в лист ожидания
type WaitlistAddedEvent struct {
	TenantID     int64  `json:"tenant_id"`
	SessionID    int64  `json:"session_id"`
	EntryID      int64  `json:"entry_id"`
	CustomerID   *int64 `json:"customer_id,omitempty"`
	Name         string `json:"name"`
	Position     int    `json:"position"`
	SessionTitle string `json:"session_title"`
	StartsAt     string `json:"starts_at"`
}

// WaitlistPromotedEvent публикуется при продвижении из листа ожидания
type WaitlistPromotedEvent struct {
	TenantID      int64  `json:"tenant_id"`
	SessionID     int64  `json:"session_id"`
	ParticipantID int64  `json:"participant_id"`
	CustomerID    *int64 `json:"customer_id,omitempty"`
	Name          string `json:"name"`
	SessionTitle  string `json:"session_title"`
	StartsAt      string `json:"starts_at"`
	PromotedAt    string `json:"promoted_at"`
}

// SessionCancelledEvent публикуется при отмене занятия
// Консьюмеры уведомляют всех участников и лист ожидания
type SessionCancelledEvent struct {
	TenantID     int64  `json:"tenant_id"`
	SessionID    int64  `json:"session_id"`
	SessionTitle string `json:"session_title"`
	StartsAt     string `json:"starts_at"`
	CancelledAt  string `json:"cancelled_at"`
}
