package slotengine

import "errors"

var (
	// ErrInvalidConfiguration возвращается при неположительной длительности услуги,
	// отрицательном интервале или пустом окне события
	ErrInvalidConfiguration = errors.New("slotengine: invalid configuration")

	// ErrBookingConflict возвращается, когда интервал пересекается с активным бронированием
	ErrBookingConflict = errors.New("slotengine: booking conflict")

	// ErrPastSlotRejected возвращается, когда начало слота не строго позже текущего момента
	ErrPastSlotRejected = errors.New("slotengine: slot start is not in the future")

	// ErrSlotOutOfSchedule возвращается, когда слот не попадает в рабочие часы дня события
	// или не совпадает с сеткой слотов
	ErrSlotOutOfSchedule = errors.New("slotengine: slot is outside of the schedule")
)

// IsRetryable возвращает true для ошибок, после которых клиенту стоит выбрать другой слот
func IsRetryable(err error) bool {
	return errors.Is(err, ErrBookingConflict) ||
		errors.Is(err, ErrPastSlotRejected) ||
		errors.Is(err, ErrSlotOutOfSchedule)
}
