package create_booking

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("create_booking: event not found")

	// ErrEventNotPublished возвращается, когда событие еще не опубликовано
	ErrEventNotPublished = errors.New("create_booking: event is not published")

	// ErrExhibitorNotFound возвращается, когда экспонент не найден
	ErrExhibitorNotFound = errors.New("create_booking: exhibitor not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceMismatch возвращается, когда услуга не принадлежит экспоненту или экспонент - событию
	ErrServiceMismatch = errors.New("create_booking: service does not belong to this exhibitor and event")

	// ErrBookingConflict возвращается, когда интервал пересекается с активным бронированием
	ErrBookingConflict = errors.New("create_booking: slot is already booked")

	// ErrPastSlotRejected возвращается, когда начало слота не в будущем
	ErrPastSlotRejected = errors.New("create_booking: slot start is not in the future")

	// ErrSlotOutOfSchedule возвращается, когда слот вне рабочих часов, дней события или сетки
	ErrSlotOutOfSchedule = errors.New("create_booking: slot is outside of the schedule")

	// ErrInvalidConfiguration возвращается при некорректной конфигурации услуги или события
	ErrInvalidConfiguration = errors.New("create_booking: invalid schedule configuration")

	// ErrPaymentUnavailable возвращается, когда оплата картой не настроена
	ErrPaymentUnavailable = errors.New("create_booking: card payment is not available")

	// ErrPaymentFailed возвращается, когда не удалось создать оплату; бронирование отменяется
	ErrPaymentFailed = errors.New("create_booking: failed to start card payment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
