package sheets

import "errors"

var (
	// ErrInit возвращается, когда не удалось создать клиента Sheets API
	ErrInit = errors.New("sheets client: failed to initialize")

	// ErrAppend возвращается, когда строку не удалось добавить в таблицу
	ErrAppend = errors.New("sheets client: failed to append row")

	// ErrQueueFull возвращается, когда очередь выгрузки переполнена
	ErrQueueFull = errors.New("sheets exporter: queue is full")

	// ErrClosed возвращается после остановки выгрузки
	ErrClosed = errors.New("sheets exporter: closed")
)
