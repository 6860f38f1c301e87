package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/marche-portal/internal/api/middleware"
	"github.com/m04kA/marche-portal/internal/service/bookings"
	"github.com/m04kA/marche-portal/internal/service/bookings/models"
	"github.com/m04kA/marche-portal/pkg/logger"
)

type fakeService struct {
	id, userID int64
	err        error
}

func (f *fakeService) GetByID(_ context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	f.id, f.userID = id, userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, UserID: userID, Status: "CONFIRMED"}, nil
}

func serve(svc *fakeService, target string, userID string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/bookings/{bookingId}", NewHandler(svc, logger.NewNop()).Handle)
	r := httptest.NewRequest(http.MethodGet, target, nil)
	if userID != "" {
		r.Header.Set(middleware.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandle_OK(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, "/api/v1/bookings/42", "7")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), svc.id)
	assert.Equal(t, int64(7), svc.userID)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "CONFIRMED", body.Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		userID     string
		err        error
		wantStatus int
	}{
		{"no user", "/api/v1/bookings/42", "", nil, http.StatusUnauthorized},
		{"bad id", "/api/v1/bookings/abc", "7", nil, http.StatusBadRequest},
		{"not found", "/api/v1/bookings/42", "7", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", "/api/v1/bookings/42", "7", bookings.ErrAccessDenied, http.StatusForbidden},
		{"internal", "/api/v1/bookings/42", "7", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.target, tt.userID)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
