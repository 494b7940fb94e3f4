package customerservice

// Customer модель клиента из справочника CustomerService
type Customer struct {
	ID       int64   `json:"id"`
	TenantID int64   `json:"tenant_id"`
	Name     string  `json:"name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// ErrorResponse модель ошибки от CustomerService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
