package exhibitors

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("service: event not found")

	// ErrEventNotPublished возвращается при регистрации на неопубликованное событие
	ErrEventNotPublished = errors.New("service: event is not published")

	// ErrEventFull возвращается, когда на событии не осталось мест для экспонентов
	ErrEventFull = errors.New("service: event has no free exhibitor places")

	// ErrExhibitorNotFound возвращается, когда экспонент не найден
	ErrExhibitorNotFound = errors.New("service: exhibitor not found")

	// ErrAlreadyRegistered возвращается при повторной регистрации пользователя на событие
	ErrAlreadyRegistered = errors.New("service: user already registered for event")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// ErrConcurrentUpdate возвращается, когда конкурирующая транзакция изменила те же данные
var ErrConcurrentUpdate = errors.New("service: concurrent update, retry the request")
