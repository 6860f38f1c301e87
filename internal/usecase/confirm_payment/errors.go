package confirm_payment

import "errors"

var (
	// ErrInvalidSignature возвращается, когда подпись webhook не прошла проверку
	ErrInvalidSignature = errors.New("confirm_payment: invalid signature")

	// ErrInvalidPayload возвращается, когда событие не удалось разобрать
	ErrInvalidPayload = errors.New("confirm_payment: invalid payload")

	// ErrBookingNotFound возвращается, когда бронирование из события не найдено
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
