package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	EventID   int64 // ID события
	ServiceID int64 // ID услуги
}

// Response модель ответа со списком доступных слотов
type Response struct {
	EventID         int64
	ExhibitorID     int64
	ServiceID       int64
	DurationMinutes int         // Длительность услуги
	IntervalMinutes int         // Интервал экспонента после каждой услуги
	Slots           []time.Time // Времена начала в хронологическом порядке
}
