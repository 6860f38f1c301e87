package slotengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/marche-portal/internal/domain"
)

var jst = time.FixedZone("JST", 9*60*60)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, time.June, day, hour, minute, 0, 0, jst)
}

func testEvent(startDay, endDay int) domain.Event {
	return domain.Event{
		ID:        1,
		StartDate: at(startDay, 0, 0),
		EndDate:   at(endDay, 0, 0),
		Status:    domain.EventStatusPublished,
	}
}

func testService(duration int) domain.Service {
	return domain.Service{ID: 10, ExhibitorID: 5, DurationMinutes: duration, Price: 3000}
}

func booking(id int64, start, end time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: id, ServiceID: 10, StartTime: start, EndTime: end, Status: status}
}

func TestGenerateAvailableSlots_FullDay(t *testing.T) {
	rules := DefaultRules(jst)
	now := at(1, 0, 0)

	slots, err := GenerateAvailableSlots(rules, testEvent(10, 11), testService(30), domain.Exhibitor{}, nil, now)
	require.NoError(t, err)

	// 9:00 ... 17:30
	require.Len(t, slots, 18)
	assert.Equal(t, at(10, 9, 0), slots[0])
	assert.Equal(t, at(10, 17, 30), slots[len(slots)-1])
}

func TestGenerateAvailableSlots_MultiDayEvent(t *testing.T) {
	rules := DefaultRules(jst)
	now := at(1, 0, 0)

	t.Run("midnight end date does not add a day", func(t *testing.T) {
		slots, err := GenerateAvailableSlots(rules, testEvent(10, 12), testService(60), domain.Exhibitor{}, nil, now)
		require.NoError(t, err)

		// 9:00 ... 17:00 каждый из двух дней
		require.Len(t, slots, 34)
		assert.Equal(t, at(10, 9, 0), slots[0])
		assert.Equal(t, at(11, 17, 0), slots[len(slots)-1])
	})

	t.Run("end date inside a day includes that day", func(t *testing.T) {
		event := testEvent(10, 11)
		event.EndDate = at(11, 12, 0)

		slots, err := GenerateAvailableSlots(rules, event, testService(60), domain.Exhibitor{}, nil, now)
		require.NoError(t, err)
		assert.Equal(t, at(11, 17, 0), slots[len(slots)-1])
	})
}

func TestGenerateAvailableSlots_InvalidConfiguration(t *testing.T) {
	rules := DefaultRules(jst)
	now := at(1, 0, 0)

	tests := []struct {
		name      string
		rules     Rules
		event     domain.Event
		service   domain.Service
		exhibitor domain.Exhibitor
	}{
		{name: "zero duration", rules: rules, event: testEvent(10, 11), service: testService(0)},
		{name: "negative duration", rules: rules, event: testEvent(10, 11), service: testService(-30)},
		{name: "negative interval", rules: rules, event: testEvent(10, 11), service: testService(30),
			exhibitor: domain.Exhibitor{IntervalMinutes: -5}},
		{name: "empty event window", rules: rules, event: testEvent(10, 10), service: testService(30)},
		{name: "inverted event window", rules: rules, event: testEvent(12, 10), service: testService(30)},
		{name: "too long event", rules: rules, event: domain.Event{
			StartDate: at(1, 0, 0), EndDate: at(1, 0, 0).AddDate(2, 0, 0)}, service: testService(30)},
		{name: "zero step", rules: Rules{Location: jst, OpenHour: 9, CloseHour: 18}, event: testEvent(10, 11),
			service: testService(30)},
		{name: "inverted hours", rules: Rules{Location: jst, OpenHour: 18, CloseHour: 9, Step: time.Hour},
			event: testEvent(10, 11), service: testService(30)},
		{name: "no location", rules: Rules{OpenHour: 9, CloseHour: 18, Step: time.Hour},
			event: testEvent(10, 11), service: testService(30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateAvailableSlots(tt.rules, tt.event, tt.service, tt.exhibitor, nil, now)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Nil(t, slots)
		})
	}
}

func TestGenerateAvailableSlots_Deterministic(t *testing.T) {
	rules := DefaultRules(jst)
	now := at(10, 11, 10)
	existing := []*domain.Booking{
		booking(1, at(10, 13, 0), at(10, 14, 0), domain.StatusConfirmed),
		booking(2, at(11, 9, 0), at(11, 10, 0), domain.StatusPending),
	}

	first, err := GenerateAvailableSlots(rules, testEvent(10, 12), testService(60), domain.Exhibitor{IntervalMinutes: 15}, existing, now)
	require.NoError(t, err)
	second, err := GenerateAvailableSlots(rules, testEvent(10, 12), testService(60), domain.Exhibitor{IntervalMinutes: 15}, existing, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateAvailableSlots_Properties(t *testing.T) {
	rules := DefaultRules(jst)
	now := at(10, 10, 20)
	existing := []*domain.Booking{
		booking(1, at(10, 12, 0), at(10, 12, 45), domain.StatusConfirmed),
		booking(2, at(10, 15, 30), at(10, 16, 15), domain.StatusPending),
		booking(3, at(10, 16, 30), at(10, 17, 15), domain.StatusCancelled),
	}
	service := testService(45)
	exhibitor := domain.Exhibitor{IntervalMinutes: 10}

	slots, err := GenerateAvailableSlots(rules, testEvent(10, 12), service, exhibitor, existing, now)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for i, s := range slots {
		_, closing := rules.businessHours(s)
		assert.False(t, s.Add(service.Duration()).After(closing), "slot %s ends after closing", s)
		assert.True(t, s.After(now), "slot %s is not in the future", s)
		if i > 0 {
			assert.True(t, s.After(slots[i-1]), "slots must be ordered")
		}

		err := ValidateBookingRequest(service.ID, s, s.Add(service.Duration()), existing, now, exhibitor.Buffer())
		assert.NoError(t, err, "generated slot %s must be bookable", s)
		assert.NoError(t, CheckSlotPlacement(rules, testEvent(10, 12), service, s))
	}
}

func TestGenerateAvailableSlots_BusinessHoursBoundary(t *testing.T) {
	now := at(1, 0, 0)
	service := testService(45)

	t.Run("default step", func(t *testing.T) {
		slots, err := GenerateAvailableSlots(DefaultRules(jst), testEvent(10, 11), service, domain.Exhibitor{}, nil, now)
		require.NoError(t, err)

		assert.Contains(t, slots, at(10, 17, 0))
		assert.NotContains(t, slots, at(10, 17, 30))
	})

	t.Run("quarter step", func(t *testing.T) {
		rules := DefaultRules(jst)
		rules.Step = 15 * time.Minute

		slots, err := GenerateAvailableSlots(rules, testEvent(10, 11), service, domain.Exhibitor{}, nil, now)
		require.NoError(t, err)

		assert.Contains(t, slots, at(10, 17, 15))
		assert.NotContains(t, slots, at(10, 17, 30))
		assert.Equal(t, at(10, 17, 15), slots[len(slots)-1])
	})

	t.Run("fits business hours", func(t *testing.T) {
		rules := DefaultRules(jst)
		assert.True(t, rules.FitsBusinessHours(at(10, 17, 15), service.Duration()))
		assert.False(t, rules.FitsBusinessHours(at(10, 17, 30), service.Duration()))
		assert.False(t, rules.FitsBusinessHours(at(10, 8, 45), service.Duration()))
	})
}

func TestGenerateAvailableSlots_PastExclusion(t *testing.T) {
	rules := DefaultRules(jst)

	t.Run("cursor equal to now is excluded", func(t *testing.T) {
		now := at(10, 12, 0)
		slots, err := GenerateAvailableSlots(rules, testEvent(10, 11), testService(30), domain.Exhibitor{}, nil, now)
		require.NoError(t, err)

		assert.NotContains(t, slots, at(10, 12, 0))
		assert.Equal(t, at(10, 12, 30), slots[0])
	})

	t.Run("event in the past yields no slots", func(t *testing.T) {
		now := at(20, 0, 0)
		slots, err := GenerateAvailableSlots(rules, testEvent(10, 12), testService(30), domain.Exhibitor{}, nil, now)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestGenerateAvailableSlots_ExistingBookings(t *testing.T) {
	rules := DefaultRules(jst)
	now := at(1, 0, 0)
	service := testService(30)

	t.Run("booked interval is removed", func(t *testing.T) {
		existing := []*domain.Booking{booking(1, at(10, 10, 0), at(10, 10, 30), domain.StatusConfirmed)}

		slots, err := GenerateAvailableSlots(rules, testEvent(10, 11), service, domain.Exhibitor{}, existing, now)
		require.NoError(t, err)

		assert.NotContains(t, slots, at(10, 10, 0))
		assert.Contains(t, slots, at(10, 9, 30))
		assert.Contains(t, slots, at(10, 10, 30))
	})

	t.Run("cancelled booking does not block", func(t *testing.T) {
		existing := []*domain.Booking{booking(1, at(10, 10, 0), at(10, 10, 30), domain.StatusCancelled)}

		slots, err := GenerateAvailableSlots(rules, testEvent(10, 11), service, domain.Exhibitor{}, existing, now)
		require.NoError(t, err)
		assert.Contains(t, slots, at(10, 10, 0))
	})

	t.Run("other service does not block", func(t *testing.T) {
		other := booking(1, at(10, 10, 0), at(10, 10, 30), domain.StatusConfirmed)
		other.ServiceID = 99

		slots, err := GenerateAvailableSlots(rules, testEvent(10, 11), service, domain.Exhibitor{}, []*domain.Booking{other, nil}, now)
		require.NoError(t, err)
		assert.Len(t, slots, 18)
	})

	t.Run("interval extends blocked time on both sides", func(t *testing.T) {
		existing := []*domain.Booking{booking(1, at(10, 11, 0), at(10, 11, 30), domain.StatusConfirmed)}
		exhibitor := domain.Exhibitor{IntervalMinutes: 15}

		slots, err := GenerateAvailableSlots(rules, testEvent(10, 11), service, exhibitor, existing, now)
		require.NoError(t, err)

		// 10:30 + 30m + 15m заходит на 11:00
		assert.NotContains(t, slots, at(10, 10, 30))
		assert.NotContains(t, slots, at(10, 11, 0))
		// 11:30 попадает в интервал после бронирования до 11:45
		assert.NotContains(t, slots, at(10, 11, 30))
		assert.Contains(t, slots, at(10, 10, 0))
		assert.Contains(t, slots, at(10, 12, 0))
	})

	t.Run("interval after closing does not hide the last slot", func(t *testing.T) {
		exhibitor := domain.Exhibitor{IntervalMinutes: 30}

		slots, err := GenerateAvailableSlots(rules, testEvent(10, 11), service, exhibitor, nil, now)
		require.NoError(t, err)
		assert.Equal(t, at(10, 17, 30), slots[len(slots)-1])
	})
}

func TestValidateBookingRequest(t *testing.T) {
	now := at(1, 0, 0)
	existing := []*domain.Booking{booking(1, at(10, 10, 0), at(10, 10, 30), domain.StatusConfirmed)}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		existing []*domain.Booking
		buffer   time.Duration
		wantErr  error
	}{
		{name: "overlapping booking is a conflict", start: at(10, 10, 15), end: at(10, 10, 45),
			existing: existing, wantErr: ErrBookingConflict},
		{name: "same interval is a conflict", start: at(10, 10, 0), end: at(10, 10, 30),
			existing: existing, wantErr: ErrBookingConflict},
		{name: "enclosing interval is a conflict", start: at(10, 9, 30), end: at(10, 11, 0),
			existing: existing, wantErr: ErrBookingConflict},
		{name: "adjacent after is accepted", start: at(10, 10, 30), end: at(10, 11, 0), existing: existing},
		{name: "adjacent before is accepted", start: at(10, 9, 30), end: at(10, 10, 0), existing: existing},
		{name: "cancelled booking is ignored", start: at(10, 10, 0), end: at(10, 10, 30),
			existing: []*domain.Booking{booking(1, at(10, 10, 0), at(10, 10, 30), domain.StatusCancelled)}},
		{name: "pending booking blocks", start: at(10, 10, 0), end: at(10, 10, 30),
			existing: []*domain.Booking{booking(1, at(10, 10, 0), at(10, 10, 30), domain.StatusPending)},
			wantErr: ErrBookingConflict},
		{name: "buffer after existing booking blocks adjacent", start: at(10, 10, 30), end: at(10, 11, 0),
			existing: existing, buffer: 10 * time.Minute, wantErr: ErrBookingConflict},
		{name: "buffer after candidate blocks adjacent", start: at(10, 9, 30), end: at(10, 10, 0),
			existing: existing, buffer: 10 * time.Minute, wantErr: ErrBookingConflict},
		{name: "buffer respected", start: at(10, 10, 40), end: at(10, 11, 10), existing: existing,
			buffer: 10 * time.Minute},
		{name: "end before start", start: at(10, 11, 0), end: at(10, 10, 0), wantErr: ErrInvalidConfiguration},
		{name: "empty interval", start: at(10, 11, 0), end: at(10, 11, 0), wantErr: ErrInvalidConfiguration},
		{name: "negative buffer", start: at(10, 11, 0), end: at(10, 11, 30), buffer: -time.Minute,
			wantErr: ErrInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBookingRequest(10, tt.start, tt.end, tt.existing, now, tt.buffer)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateBookingRequest_PastSlot(t *testing.T) {
	now := at(10, 10, 0)

	err := ValidateBookingRequest(10, at(10, 10, 0), at(10, 10, 30), nil, now, 0)
	assert.ErrorIs(t, err, ErrPastSlotRejected)

	err = ValidateBookingRequest(10, at(10, 9, 0), at(10, 9, 30), nil, now, 0)
	assert.ErrorIs(t, err, ErrPastSlotRejected)
	assert.True(t, IsRetryable(err))

	assert.NoError(t, ValidateBookingRequest(10, at(10, 10, 30), at(10, 11, 0), nil, now, 0))
}

func TestValidateBookingRequest_NoOverlapInvariant(t *testing.T) {
	now := at(1, 0, 0)
	service := testService(30)
	rules := DefaultRules(jst)
	accepted := make([]*domain.Booking, 0)

	// Пытаемся забронировать каждые 15 минут: принятые интервалы не должны пересекаться
	for cursor := at(10, 9, 0); cursor.Before(at(10, 18, 0)); cursor = cursor.Add(15 * time.Minute) {
		end := cursor.Add(service.Duration())
		if !rules.FitsBusinessHours(cursor, service.Duration()) {
			continue
		}
		if err := ValidateBookingRequest(service.ID, cursor, end, accepted, now, 0); err != nil {
			require.ErrorIs(t, err, ErrBookingConflict)
			continue
		}
		accepted = append(accepted, booking(int64(len(accepted)+1), cursor, end, domain.StatusConfirmed))
	}

	require.Len(t, accepted, 18)
	for i := range accepted {
		for j := i + 1; j < len(accepted); j++ {
			x := Interval{Start: accepted[i].StartTime, End: accepted[i].EndTime}
			y := Interval{Start: accepted[j].StartTime, End: accepted[j].EndTime}
			assert.False(t, Overlaps(x, y), "bookings %d and %d overlap", accepted[i].ID, accepted[j].ID)
		}
	}
}

func TestCheckSlotPlacement(t *testing.T) {
	rules := DefaultRules(jst)
	event := testEvent(10, 12)
	service := testService(45)

	tests := []struct {
		name    string
		start   time.Time
		wantErr error
	}{
		{name: "opening", start: at(10, 9, 0)},
		{name: "last fitting slot", start: at(11, 17, 0)},
		{name: "ends after closing", start: at(10, 17, 30), wantErr: ErrSlotOutOfSchedule},
		{name: "before opening", start: at(10, 8, 30), wantErr: ErrSlotOutOfSchedule},
		{name: "off grid", start: at(10, 10, 15), wantErr: ErrSlotOutOfSchedule},
		{name: "day before event", start: at(9, 10, 0), wantErr: ErrSlotOutOfSchedule},
		{name: "end date day is excluded", start: at(12, 10, 0), wantErr: ErrSlotOutOfSchedule},
		{name: "other timezone same instant", start: at(10, 10, 0).UTC()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSlotPlacement(rules, event, service, tt.start)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	t.Run("invalid service", func(t *testing.T) {
		err := CheckSlotPlacement(rules, event, testService(0), at(10, 10, 0))
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	})
}

func TestOverlaps(t *testing.T) {
	a := Interval{Start: at(10, 10, 0), End: at(10, 10, 30)}

	assert.True(t, Overlaps(a, Interval{Start: at(10, 10, 15), End: at(10, 10, 45)}))
	assert.True(t, Overlaps(Interval{Start: at(10, 10, 15), End: at(10, 10, 45)}, a))
	assert.False(t, Overlaps(a, Interval{Start: at(10, 10, 30), End: at(10, 11, 0)}))
	assert.False(t, Overlaps(Interval{Start: at(10, 9, 30), End: at(10, 10, 0)}, a))
	assert.True(t, Overlaps(a, a.Extend(time.Hour)))
}
