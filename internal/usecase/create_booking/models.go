package create_booking

import (
	"time"

	"github.com/m04kA/marche-portal/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64                // ID пользователя
	EventID       int64                // ID события
	ExhibitorID   int64                // ID экспонента
	ServiceID     int64                // ID услуги
	StartTime     time.Time            // Начало слота
	EndTime       *time.Time           // Конец слота (опционально, должен совпадать с длительностью услуги)
	PaymentMethod domain.PaymentMethod // CREDIT_CARD или ON_SITE
	Notes         *string              // Заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking     *domain.Booking
	CheckoutURL *string // Ссылка на оплату для CREDIT_CARD
}
