package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/marche-portal/pkg/pgerr"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с активным бронированием
	// (EXCLUDE constraint) или конкурирующая транзакция изменила бронирования услуги
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("booking.repository: invalid booking status")

	// ErrStatusChanged возвращается, когда бронирование уже не в ожидаемом статусе
	ErrStatusChanged = errors.New("booking.repository: booking status has changed")
)

// IsSlotConflict проверяет, что err означает занятый слот: ErrSlotNotAvailable
// или ошибку сериализации, пришедшую при коммите транзакции
func IsSlotConflict(err error) bool {
	return errors.Is(err, ErrSlotNotAvailable) ||
		pgerr.IsExclusionViolation(err) ||
		pgerr.IsSerializationFailure(err)
}

// queryErr оборачивает ошибку выполнения запроса, выделяя конфликты слотов
func queryErr(op string, err error) error {
	if pgerr.IsExclusionViolation(err) || pgerr.IsSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %v", ErrSlotNotAvailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
