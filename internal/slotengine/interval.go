package slotengine

import "time"

// Interval полуинтервал времени [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// Extend возвращает интервал, продленный на buffer после окончания
func (i Interval) Extend(buffer time.Duration) Interval {
	return Interval{Start: i.Start, End: i.End.Add(buffer)}
}

// Overlaps проверяет пересечение полуинтервалов [a,b) и [c,d): a < d && c < b
// Соседние интервалы ([10:00,10:30) и [10:30,11:00)) не пересекаются
func Overlaps(x, y Interval) bool {
	return x.Start.Before(y.End) && y.Start.Before(x.End)
}
