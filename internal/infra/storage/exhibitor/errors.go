package exhibitor

import "errors"

var (
	// ErrExhibitorNotFound возвращается, когда экспонент не найден
	ErrExhibitorNotFound = errors.New("exhibitor.repository: exhibitor not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("exhibitor.repository: service not found")

	// ErrAlreadyRegistered возвращается при повторной регистрации пользователя на событие
	ErrAlreadyRegistered = errors.New("exhibitor.repository: user is already registered for this event")

	// ErrConcurrentUpdate возвращается, когда конкурирующая транзакция изменила данные
	ErrConcurrentUpdate = errors.New("exhibitor.repository: concurrent update")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("exhibitor.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("exhibitor.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("exhibitor.repository: failed to scan row")
)
