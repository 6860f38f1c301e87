package get_available_slots

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("get_available_slots: event not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrServiceNotInEvent возвращается, когда экспонент услуги не участвует в событии
	ErrServiceNotInEvent = errors.New("get_available_slots: service does not belong to this event")

	// ErrInvalidConfiguration возвращается при некорректной длительности услуги,
	// интервале экспонента или окне события
	ErrInvalidConfiguration = errors.New("get_available_slots: invalid schedule configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
