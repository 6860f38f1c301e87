package sheets

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/marche-portal/pkg/logger"
)

type fakeAppender struct {
	mu         sync.Mutex
	bookings   []BookingRow
	exhibitors []ExhibitorRow
	err        error
	block      chan struct{}
}

func (f *fakeAppender) AppendBooking(_ context.Context, row BookingRow) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, row)
	return f.err
}

func (f *fakeAppender) AppendExhibitor(_ context.Context, row ExhibitorRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exhibitors = append(f.exhibitors, row)
	return f.err
}

func TestExporter_ExportsInOrder(t *testing.T) {
	appender := &fakeAppender{}
	e := NewExporter(appender, 10, time.Second, logger.NewNop())

	assert.NoError(t, e.ExportBooking(BookingRow{BookingID: 1}))
	assert.NoError(t, e.ExportExhibitor(ExhibitorRow{ExhibitorID: 5}))
	assert.NoError(t, e.ExportBooking(BookingRow{BookingID: 2}))
	e.Close()

	assert.Len(t, appender.bookings, 2)
	assert.Equal(t, int64(1), appender.bookings[0].BookingID)
	assert.Equal(t, int64(2), appender.bookings[1].BookingID)
	assert.Len(t, appender.exhibitors, 1)
}

func TestExporter_ErrorsAreSwallowed(t *testing.T) {
	appender := &fakeAppender{err: errors.New("quota exceeded")}
	e := NewExporter(appender, 10, 0, logger.NewNop())

	assert.NoError(t, e.ExportBooking(BookingRow{BookingID: 1}))
	e.Close()

	assert.Len(t, appender.bookings, 1)
}

func TestExporter_QueueFullAndClosed(t *testing.T) {
	appender := &fakeAppender{block: make(chan struct{})}
	e := NewExporter(appender, 1, time.Second, logger.NewNop())

	// Первая строка уходит воркеру и блокирует его, вторая занимает очередь
	assert.NoError(t, e.ExportBooking(BookingRow{BookingID: 1}))
	assert.Eventually(t, func() bool { return len(e.queue) == 0 }, time.Second, time.Millisecond)
	assert.NoError(t, e.ExportBooking(BookingRow{BookingID: 2}))
	assert.ErrorIs(t, e.ExportBooking(BookingRow{BookingID: 3}), ErrQueueFull)

	close(appender.block)
	e.Close()
	e.Close()

	assert.ErrorIs(t, e.ExportBooking(BookingRow{BookingID: 4}), ErrClosed)
	assert.Len(t, appender.bookings, 2)
}
