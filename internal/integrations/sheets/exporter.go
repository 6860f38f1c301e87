package sheets

import (
	"context"
	"sync"
	"time"
)

// Appender назначение выгрузки (*Client)
type Appender interface {
	AppendBooking(ctx context.Context, row BookingRow) error
	AppendExhibitor(ctx context.Context, row ExhibitorRow) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// DefaultQueueSize размер очереди выгрузки по умолчанию
const DefaultQueueSize = 256

type job struct {
	booking   *BookingRow
	exhibitor *ExhibitorRow
}

// Exporter выгружает строки в фоне одним воркером
// Ошибки выгрузки только логируются: запрос пользователя от них не зависит
type Exporter struct {
	appender Appender
	timeout  time.Duration
	log      Logger

	queue  chan job
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewExporter создает и запускает фоновую выгрузку
func NewExporter(appender Appender, queueSize int, timeout time.Duration, log Logger) *Exporter {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	e := &Exporter{
		appender: appender,
		timeout:  timeout,
		log:      log,
		queue:    make(chan job, queueSize),
	}

	e.wg.Add(1)
	go e.run()

	return e
}

// ExportBooking ставит строку бронирования в очередь
func (e *Exporter) ExportBooking(row BookingRow) error {
	return e.enqueue(job{booking: &row})
}

// ExportExhibitor ставит строку экспонента в очередь
func (e *Exporter) ExportExhibitor(row ExhibitorRow) error {
	return e.enqueue(job{exhibitor: &row})
}

// Close останавливает прием строк и дожидается выгрузки очереди
func (e *Exporter) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	close(e.queue)
	e.mu.Unlock()

	e.wg.Wait()
}

func (e *Exporter) enqueue(j job) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.closed {
		return ErrClosed
	}

	select {
	case e.queue <- j:
		return nil
	default:
		e.log.Warn("Sheets: export queue is full, row dropped")
		return ErrQueueFull
	}
}

func (e *Exporter) run() {
	defer e.wg.Done()

	for j := range e.queue {
		e.process(j)
	}
}

func (e *Exporter) process(j job) {
	ctx := context.Background()
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	switch {
	case j.booking != nil:
		if err := e.appender.AppendBooking(ctx, *j.booking); err != nil {
			e.log.Error("Sheets: failed to export booking id=%d: %v", j.booking.BookingID, err)
			return
		}
		e.log.Info("Sheets: booking id=%d exported", j.booking.BookingID)
	case j.exhibitor != nil:
		if err := e.appender.AppendExhibitor(ctx, *j.exhibitor); err != nil {
			e.log.Error("Sheets: failed to export exhibitor id=%d: %v", j.exhibitor.ExhibitorID, err)
			return
		}
		e.log.Info("Sheets: exhibitor id=%d exported", j.exhibitor.ExhibitorID)
	}
}
