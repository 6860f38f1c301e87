package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры клиента Stripe
type Config struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Currency      string
	// BaseURL переопределяет адрес API (для тестов), пусто - api.stripe.com
	BaseURL string
}

// Client клиент оплаты через Stripe Checkout
type Client struct {
	sessions      *session.Client
	webhookSecret string
	successURL    string
	cancelURL     string
	currency      string
	log           Logger
}

// NewClient создает клиента Stripe со своим backend, не трогая глобальный stripe.Key
func NewClient(cfg Config, log Logger) *Client {
	backendCfg := &stripe.BackendConfig{
		LeveledLogger: &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
		backendCfg.MaxNetworkRetries = stripe.Int64(0)
	}

	currency := cfg.Currency
	if currency == "" {
		currency = string(stripe.CurrencyJPY)
	}

	return &Client{
		sessions: &session.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
		webhookSecret: cfg.WebhookSecret,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
		currency:      currency,
		log:           log,
	}
}

// CreateCheckoutSession создает checkout-сессию на оплату одного бронирования
// ID бронирования передается в metadata и client_reference_id
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidRequest)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	}

	bookingID := strconv.FormatInt(req.BookingID, 10)

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(c.successURL),
		CancelURL:         stripe.String(c.cancelURL),
		ClientReferenceID: stripe.String(bookingID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(c.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.ServiceName),
						Description: stripe.String(req.StartTime.Format(time.RFC3339)),
					},
					UnitAmount: stripe.Int64(req.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.AddMetadata(MetadataBookingID, bookingID)
	params.Context = ctx

	s, err := c.sessions.New(params)
	if err != nil {
		c.log.Error("Stripe: failed to create checkout session for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrCheckoutFailed, err)
	}

	c.log.Info("Stripe: checkout session %s created for booking id=%d", s.ID, req.BookingID)

	return &CheckoutSession{
		ID:        s.ID,
		URL:       s.URL,
		ExpiresAt: time.Unix(s.ExpiresAt, 0),
	}, nil
}

// ParseWebhook проверяет подпись Stripe-Signature и разбирает событие checkout-сессии
// Для событий других типов SessionID и BookingID остаются пустыми
func (c *Client) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	result := &WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	if !IsCheckoutEvent(result.Type) {
		return result, nil
	}
	if event.Data == nil {
		return nil, fmt.Errorf("%w: event %s has no data", ErrInvalidPayload, event.ID)
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, fmt.Errorf("%w: decode checkout session: %v", ErrInvalidPayload, err)
	}

	result.SessionID = s.ID
	result.PaymentStatus = string(s.PaymentStatus)

	if raw, ok := s.Metadata[MetadataBookingID]; ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: metadata %s=%q: %v", ErrInvalidPayload, MetadataBookingID, raw, err)
		}
		result.BookingID = id
	}

	return result, nil
}
