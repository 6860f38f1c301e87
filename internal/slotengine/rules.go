package slotengine

import (
	"fmt"
	"time"

	"github.com/m04kA/marche-portal/internal/domain"
)

// MaxEventDays ограничивает количество дней, по которым генерируются слоты
const MaxEventDays = 366

// Rules фиксированные правила расписания: рабочие часы и шаг сканирования
type Rules struct {
	Location  *time.Location
	OpenHour  int           // час открытия, включительно
	CloseHour int           // час закрытия: слот должен закончиться не позже
	Step      time.Duration // шаг перебора начала слотов, не зависит от длительности услуги
}

// DefaultRules возвращает правила 9:00-18:00 с шагом 30 минут
func DefaultRules(loc *time.Location) Rules {
	if loc == nil {
		loc = time.UTC
	}
	return Rules{
		Location:  loc,
		OpenHour:  domain.DefaultOpenHour,
		CloseHour: domain.DefaultCloseHour,
		Step:      domain.DefaultStepMinutes * time.Minute,
	}
}

// Validate проверяет корректность правил
func (r Rules) Validate() error {
	if r.Location == nil {
		return fmt.Errorf("%w: location is required", ErrInvalidConfiguration)
	}
	if r.OpenHour < 0 || r.CloseHour > 24 || r.OpenHour >= r.CloseHour {
		return fmt.Errorf("%w: business hours %d-%d", ErrInvalidConfiguration, r.OpenHour, r.CloseHour)
	}
	if r.Step <= 0 {
		return fmt.Errorf("%w: step must be positive", ErrInvalidConfiguration)
	}
	return nil
}

// businessHours возвращает время открытия и закрытия для дня, в который попадает t
func (r Rules) businessHours(t time.Time) (time.Time, time.Time) {
	y, m, d := t.In(r.Location).Date()
	open := time.Date(y, m, d, r.OpenHour, 0, 0, 0, r.Location)
	closing := time.Date(y, m, d, r.CloseHour, 0, 0, 0, r.Location)
	return open, closing
}

// FitsBusinessHours проверяет, что [start, start+duration) целиком лежит в рабочих часах дня start
func (r Rules) FitsBusinessHours(start time.Time, duration time.Duration) bool {
	open, closing := r.businessHours(start)
	return !start.Before(open) && !start.Add(duration).After(closing)
}

// eventDays возвращает полночь каждого календарного дня, который затрагивает окно
// события [StartDate, EndDate). EndDate ровно в полночь не добавляет новый день
func (r Rules) eventDays(event domain.Event) []time.Time {
	first := startOfDay(event.StartDate.In(r.Location))
	end := event.EndDate.In(r.Location)
	last := startOfDay(end)
	if end.Equal(last) {
		last = last.AddDate(0, 0, -1)
	}

	days := make([]time.Time, 0)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
