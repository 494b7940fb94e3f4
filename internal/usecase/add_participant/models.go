package add_participant

import (
	"time"

	"github.com/m04kA/SMC-GroupSessionService/internal/domain"
)

// Request модель запроса на запись участника
// Личность: либо CustomerID (клиент из справочника), либо Name с контактами (walk-in)
type Request struct {
	TenantID  int64
	SessionID int64

	CustomerID *int64
	Name       string
	Email      *string
	Phone      *string

	Paid bool
}

// Response модель ответа на запись участника
// Переполнение вместимости - не ошибка: участник попадает в лист ожидания
type Response struct {
	Enrolled bool // true - место подтверждено, false - лист ожидания

	Participant   *EnrolledParticipant
	WaitlistEntry *QueuedEntry
}

// EnrolledParticipant подтвержденный участник занятия
type EnrolledParticipant struct {
	ID         int64
	SessionID  int64
	CustomerID *int64
	Name       string
	Email      *string
	Phone      *string
	Status     string
	Paid       bool
	CreatedAt  time.Time
}

// QueuedEntry запись в листе ожидания
type QueuedEntry struct {
	ID         int64
	SessionID  int64
	CustomerID *int64
	Name       string
	Email      *string
	Phone      *string
	Position   int
	CreatedAt  time.Time
}

// identity собирает доменную личность из запроса
func (r *Request) identity() domain.Identity {
	return domain.Identity{
		CustomerID: r.CustomerID,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
	}
}
