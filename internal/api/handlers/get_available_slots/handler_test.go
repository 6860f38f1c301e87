package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/marche-portal/internal/usecase/get_available_slots"
	"github.com/m04kA/marche-portal/pkg/logger"
)

type fakeUseCase struct {
	req  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.req = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/events/{eventId}/available-slots", NewHandler(uc, logger.NewNop()).Handle)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandle_Success(t *testing.T) {
	jst := time.FixedZone("JST", 9*60*60)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		EventID:         1,
		ExhibitorID:     2,
		ServiceID:       3,
		DurationMinutes: 30,
		IntervalMinutes: 10,
		Slots: []time.Time{
			time.Date(2025, 6, 10, 9, 0, 0, 0, jst),
			time.Date(2025, 6, 10, 9, 30, 0, 0, jst),
		},
	}}

	w := serve(uc, "/api/v1/events/1/available-slots?serviceId=3")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), uc.req.EventID)
	assert.Equal(t, int64(3), uc.req.ServiceID)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"2025-06-10T09:00:00+09:00", "2025-06-10T09:30:00+09:00"}, body.Slots)
	assert.Equal(t, 10, body.IntervalMinutes)
}

func TestHandle_EmptySlotsIsArray(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{EventID: 1, ServiceID: 3}}

	w := serve(uc, "/api/v1/events/1/available-slots?serviceId=3")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slots":[]`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		wantStatus int
	}{
		{"bad event id", "/api/v1/events/abc/available-slots?serviceId=3", nil, http.StatusBadRequest},
		{"missing service id", "/api/v1/events/1/available-slots", nil, http.StatusBadRequest},
		{"bad service id", "/api/v1/events/1/available-slots?serviceId=-3", nil, http.StatusBadRequest},
		{"event not found", "/api/v1/events/1/available-slots?serviceId=3", getAvailableSlots.ErrEventNotFound, http.StatusNotFound},
		{"service not found", "/api/v1/events/1/available-slots?serviceId=3", getAvailableSlots.ErrServiceNotFound, http.StatusNotFound},
		{"service not in event", "/api/v1/events/1/available-slots?serviceId=3", getAvailableSlots.ErrServiceNotInEvent, http.StatusNotFound},
		{"invalid configuration", "/api/v1/events/1/available-slots?serviceId=3",
			fmt.Errorf("%w: duration", getAvailableSlots.ErrInvalidConfiguration), http.StatusUnprocessableEntity},
		{"internal", "/api/v1/events/1/available-slots?serviceId=3", getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeUseCase{err: tt.err}, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
