package slotengine

import (
	"fmt"
	"time"

	"github.com/m04kA/marche-portal/internal/domain"
)

// GenerateAvailableSlots возвращает упорядоченный список времен начала свободных слотов услуги
//
// Для каждого дня события курсор идет от открытия до закрытия с шагом rules.Step.
// Курсор принимается, если:
//   - cursor + длительность услуги <= закрытие;
//   - [cursor, cursor + длительность + интервал) не пересекается ни с одним активным бронированием,
//     занятым как [start, end + интервал);
//   - cursor строго позже now.
//
// Функция чистая: одинаковые входные данные дают одинаковый результат
func GenerateAvailableSlots(
	rules Rules,
	event domain.Event,
	service domain.Service,
	exhibitor domain.Exhibitor,
	existing []*domain.Booking,
	now time.Time,
) ([]time.Time, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if err := validateConfiguration(event, service, exhibitor); err != nil {
		return nil, err
	}

	duration := service.Duration()
	buffer := exhibitor.Buffer()
	blocked := blockedIntervals(service.ID, existing, buffer)

	slots := make([]time.Time, 0)
	for _, day := range rules.eventDays(event) {
		open, closing := rules.businessHours(day)

		for cursor := open; cursor.Before(closing); cursor = cursor.Add(rules.Step) {
			slotEnd := cursor.Add(duration)
			// Дальше курсор только растет, слоты этого дня закончились
			if slotEnd.After(closing) {
				break
			}

			candidate := Interval{Start: cursor, End: slotEnd}.Extend(buffer)
			if _, taken := firstOverlap(candidate, blocked); taken {
				continue
			}

			if !cursor.After(now) {
				continue
			}

			slots = append(slots, cursor)
		}
	}

	return slots, nil
}

// ValidateBookingRequest проверяет предлагаемый интервал [start, end) перед сохранением
// Используется и при показе слотов, и при коммите бронирования внутри транзакции
func ValidateBookingRequest(
	serviceID int64,
	start, end time.Time,
	existing []*domain.Booking,
	now time.Time,
	buffer time.Duration,
) error {
	if !end.After(start) {
		return fmt.Errorf("%w: end %s is not after start %s",
			ErrInvalidConfiguration, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	if buffer < 0 {
		return fmt.Errorf("%w: negative interval", ErrInvalidConfiguration)
	}

	if !start.After(now) {
		return fmt.Errorf("%w: start %s, now %s",
			ErrPastSlotRejected, start.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	candidate := Interval{Start: start, End: end}.Extend(buffer)
	if booking, taken := firstOverlap(candidate, blockedIntervals(serviceID, existing, buffer)); taken {
		return fmt.Errorf("%w: overlaps booking id=%d [%s, %s)", ErrBookingConflict,
			booking.id, booking.interval.Start.Format(time.RFC3339), booking.interval.End.Format(time.RFC3339))
	}

	return nil
}

// CheckSlotPlacement проверяет, что start совпадает с одним из курсоров GenerateAvailableSlots:
// день события, рабочие часы, сетка rules.Step от открытия
func CheckSlotPlacement(rules Rules, event domain.Event, service domain.Service, start time.Time) error {
	if err := rules.Validate(); err != nil {
		return err
	}
	if service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: service duration must be positive", ErrInvalidConfiguration)
	}
	if !event.HasValidWindow() {
		return fmt.Errorf("%w: event window is empty", ErrInvalidConfiguration)
	}

	day := startOfDay(start.In(rules.Location))
	if !isEventDay(rules, event, day) {
		return fmt.Errorf("%w: %s is not an event day", ErrSlotOutOfSchedule, day.Format(domain.DateFormat))
	}

	if !rules.FitsBusinessHours(start, service.Duration()) {
		return fmt.Errorf("%w: %s + %dm does not fit %02d:00-%02d:00",
			ErrSlotOutOfSchedule, start.In(rules.Location).Format("15:04"), service.DurationMinutes,
			rules.OpenHour, rules.CloseHour)
	}

	open, _ := rules.businessHours(start)
	if start.Sub(open)%rules.Step != 0 {
		return fmt.Errorf("%w: %s is not on the %s grid",
			ErrSlotOutOfSchedule, start.In(rules.Location).Format("15:04"), rules.Step)
	}

	return nil
}

func validateConfiguration(event domain.Event, service domain.Service, exhibitor domain.Exhibitor) error {
	if service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: service duration must be positive, got %d", ErrInvalidConfiguration, service.DurationMinutes)
	}
	if exhibitor.IntervalMinutes < 0 {
		return fmt.Errorf("%w: interval must not be negative, got %d", ErrInvalidConfiguration, exhibitor.IntervalMinutes)
	}
	if !event.HasValidWindow() {
		return fmt.Errorf("%w: event end %s is not after start %s", ErrInvalidConfiguration,
			event.EndDate.Format(time.RFC3339), event.StartDate.Format(time.RFC3339))
	}
	if event.EndDate.Sub(event.StartDate) > MaxEventDays*24*time.Hour {
		return fmt.Errorf("%w: event longer than %d days", ErrInvalidConfiguration, MaxEventDays)
	}
	return nil
}

func isEventDay(rules Rules, event domain.Event, day time.Time) bool {
	for _, d := range rules.eventDays(event) {
		if d.Equal(day) {
			return true
		}
	}
	return false
}

type blockedInterval struct {
	id       int64
	interval Interval
}

// blockedIntervals собирает занятые интервалы активных бронирований услуги, продленные на buffer
func blockedIntervals(serviceID int64, bookings []*domain.Booking, buffer time.Duration) []blockedInterval {
	blocked := make([]blockedInterval, 0, len(bookings))
	for _, b := range bookings {
		if b == nil || !b.IsActive() || b.ServiceID != serviceID {
			continue
		}
		blocked = append(blocked, blockedInterval{
			id:       b.ID,
			interval: Interval{Start: b.StartTime, End: b.EndTime}.Extend(buffer),
		})
	}
	return blocked
}

func firstOverlap(candidate Interval, blocked []blockedInterval) (blockedInterval, bool) {
	for _, b := range blocked {
		if Overlaps(candidate, b.interval) {
			return b, true
		}
	}
	return blockedInterval{}, false
}
