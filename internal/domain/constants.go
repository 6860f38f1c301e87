package domain

// Default configuration values
const (
	DefaultIntervalMinutes = 0
	DefaultOpenHour        = 9
	DefaultCloseHour       = 18
	DefaultStepMinutes     = 30
	DefaultTimezone        = "Asia/Tokyo"
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxIntervalMinutes        = 240
	MaxExhibitorsLimit        = 1000
	MaxNotesLength            = 500
	MaxTitleLength            = 200
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, которые занимают время
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// ValidStatuses все допустимые статусы бронирования
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
}
