package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/marche-portal/internal/api/handlers"
	"github.com/m04kA/marche-portal/internal/api/middleware"
	"github.com/m04kA/marche-portal/internal/domain"
	createBooking "github.com/m04kA/marche-portal/internal/usecase/create_booking"
	"github.com/m04kA/marche-portal/pkg/logger"
	"github.com/m04kA/marche-portal/pkg/ptr"
)

type fakeUseCase struct {
	req  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.req = req
	return f.resp, f.err
}

const validBody = `{"eventId":1,"exhibitorId":2,"serviceId":3,"startTime":"2025-06-10T10:00:00+09:00","paymentMethod":"CREDIT_CARD"}`

func post(uc *fakeUseCase, body string, userID int64) *httptest.ResponseRecorder {
	handler := middleware.Auth(http.HandlerFunc(NewHandler(uc, logger.NewNop()).Handle))
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID > 0 {
		r.Header.Set(middleware.UserIDHeader, fmt.Sprint(userID))
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestHandle_Created(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	start := time.Date(2025, 6, 10, 10, 0, 0, 0, jst)
	uc := &fakeUseCase{resp: &createBooking.Response{
		Booking: &domain.Booking{
			ID: 11, UserID: 100, EventID: 1, ExhibitorID: 2, ServiceID: 3,
			StartTime: start, EndTime: start.Add(30 * time.Minute),
			Status: domain.StatusPending, PaymentMethod: domain.PaymentCreditCard, TotalAmount: 2500,
		},
		CheckoutURL: ptr.Ptr("https://checkout.stripe.com/c/pay/cs_test_11"),
	}}

	w := post(uc, validBody, 100)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(100), uc.req.UserID)
	assert.True(t, start.Equal(uc.req.StartTime))
	assert.Nil(t, uc.req.EndTime)
	assert.Equal(t, domain.PaymentCreditCard, uc.req.PaymentMethod)

	var body BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "PENDING", body.Status)
	assert.Equal(t, "2025-06-10T10:30:00+09:00", body.EndTime)
	require.NotNil(t, body.CheckoutURL)
}

func TestHandle_ParsesEndTime(t *testing.T) {
	uc := &fakeUseCase{err: createBooking.ErrInvalidInput}
	body := `{"eventId":1,"exhibitorId":2,"serviceId":3,"startTime":"2025-06-10T10:00:00Z","endTime":"2025-06-10T10:45:00Z","paymentMethod":"ON_SITE"}`

	w := post(uc, body, 100)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, uc.req.EndTime)
	assert.Equal(t, 45*time.Minute, uc.req.EndTime.Sub(uc.req.StartTime))
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"conflict", createBooking.ErrBookingConflict, http.StatusConflict, "BookingConflict"},
		{"past slot", createBooking.ErrPastSlotRejected, http.StatusUnprocessableEntity, "PastSlotRejected"},
		{"out of schedule", createBooking.ErrSlotOutOfSchedule, http.StatusUnprocessableEntity, "SlotOutOfSchedule"},
		{"invalid configuration", createBooking.ErrInvalidConfiguration, http.StatusUnprocessableEntity, "InvalidConfiguration"},
		{"event not found", createBooking.ErrEventNotFound, http.StatusNotFound, ""},
		{"exhibitor not found", createBooking.ErrExhibitorNotFound, http.StatusNotFound, ""},
		{"service not found", createBooking.ErrServiceNotFound, http.StatusNotFound, ""},
		{"service mismatch", createBooking.ErrServiceMismatch, http.StatusNotFound, ""},
		{"not published", createBooking.ErrEventNotPublished, http.StatusBadRequest, ""},
		{"payment unavailable", createBooking.ErrPaymentUnavailable, http.StatusBadRequest, ""},
		{"invalid input", fmt.Errorf("%w: notes too long", createBooking.ErrInvalidInput), http.StatusBadRequest, ""},
		{"payment failed", createBooking.ErrPaymentFailed, http.StatusBadGateway, ""},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(&fakeUseCase{err: tt.err}, validBody, 100)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     int64
		wantStatus int
	}{
		{"no user", validBody, 0, http.StatusUnauthorized},
		{"broken json", `{"eventId":`, 100, http.StatusBadRequest},
		{"unknown field", `{"eventId":1,"companyId":2}`, 100, http.StatusBadRequest},
		{"date only start", `{"eventId":1,"exhibitorId":2,"serviceId":3,"startTime":"2025-06-10","paymentMethod":"ON_SITE"}`, 100, http.StatusBadRequest},
		{"bad end", `{"eventId":1,"exhibitorId":2,"serviceId":3,"startTime":"2025-06-10T10:00:00Z","endTime":"10:30","paymentMethod":"ON_SITE"}`, 100, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			w := post(uc, tt.body, tt.userID)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Nil(t, uc.req)
		})
	}
}
