package payment

import "errors"

var (
	// ErrCheckoutFailed возвращается, когда Stripe не создал checkout-сессию
	ErrCheckoutFailed = errors.New("payment client: failed to create checkout session")

	// ErrInvalidSignature возвращается, когда подпись webhook не прошла проверку
	ErrInvalidSignature = errors.New("payment client: invalid webhook signature")

	// ErrInvalidPayload возвращается, когда тело webhook не удалось разобрать
	ErrInvalidPayload = errors.New("payment client: invalid webhook payload")

	// ErrInvalidRequest возвращается при некорректных параметрах запроса
	ErrInvalidRequest = errors.New("payment client: invalid request")
)
