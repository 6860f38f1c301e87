package confirm_payment

import "github.com/m04kA/marche-portal/internal/domain"

// Action результат обработки события
type Action string

const (
	ActionConfirmed        Action = "confirmed"
	ActionAlreadyConfirmed Action = "already_confirmed"
	ActionCancelled        Action = "cancelled"
	ActionIgnored          Action = "ignored"
)

// Request модель входящего webhook
type Request struct {
	Payload   []byte // Тело запроса без изменений
	Signature string // Заголовок Stripe-Signature
}

// Response модель результата обработки webhook
type Response struct {
	EventID   string
	EventType string
	BookingID int64
	Status    domain.BookingStatus // Статус бронирования после обработки (пусто, если бронирование не затронуто)
	Action    Action
}
