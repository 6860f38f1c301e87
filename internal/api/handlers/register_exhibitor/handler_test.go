package register_exhibitor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/marche-portal/internal/api/handlers"
	"github.com/m04kA/marche-portal/internal/api/middleware"
	"github.com/m04kA/marche-portal/internal/service/exhibitors"
	"github.com/m04kA/marche-portal/internal/service/exhibitors/models"
	"github.com/m04kA/marche-portal/pkg/logger"
)

type fakeService struct {
	req *models.RegisterRequest
	err error
}

func (f *fakeService) Register(_ context.Context, req *models.RegisterRequest) (*models.ExhibitorResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ExhibitorResponse{ID: 21, EventID: req.EventID, UserID: req.UserID, Name: req.Name}, nil
}

const validBody = `{"name":"陶芸工房こもれび","introduction":"手びねり体験","category":"craft","intervalMinutes":10}`

func serve(svc *fakeService, target, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/events/{eventId}/exhibitors", NewHandler(svc, logger.NewNop()).Handle)
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set(middleware.UserIDHeader, "31")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandle_Registered(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, "/api/v1/events/2/exhibitors", validBody)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, int64(2), svc.req.EventID)
	assert.Equal(t, int64(31), svc.req.UserID)
	assert.Equal(t, 10, svc.req.IntervalMinutes)
	assert.Nil(t, svc.req.BusinessName)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"event not found", exhibitors.ErrEventNotFound, http.StatusNotFound, ""},
		{"draft event", exhibitors.ErrEventNotPublished, http.StatusBadRequest, ""},
		{"invalid", exhibitors.ErrInvalidInput, http.StatusBadRequest, ""},
		{"twice", exhibitors.ErrAlreadyRegistered, http.StatusConflict, "AlreadyRegistered"},
		{"full", exhibitors.ErrEventFull, http.StatusConflict, "EventFull"},
		{"concurrent", exhibitors.ErrConcurrentUpdate, http.StatusConflict, "ConcurrentUpdate"},
		{"internal", exhibitors.ErrInternal, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, "/api/v1/events/2/exhibitors", validBody)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestHandle_BadRequest(t *testing.T) {
	svc := &fakeService{}
	assert.Equal(t, http.StatusBadRequest, serve(svc, "/api/v1/events/two/exhibitors", validBody).Code)
	assert.Equal(t, http.StatusBadRequest, serve(svc, "/api/v1/events/2/exhibitors", `{"name":`).Code)
	assert.Nil(t, svc.req)
}
