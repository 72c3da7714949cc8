package cancel_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

type serviceStub struct {
	bookingID int64
	got       *models.CancelBookingRequest
	err       error
}

func (s *serviceStub) Cancel(_ context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.bookingID = bookingID
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: bookingID, Status: string(domain.StatusCancelled), CancellationReason: req.CancellationReason}, nil
}

func serve(t *testing.T, svc *serviceStub, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := mux.NewRouter()
	h := NewHandler(svc, logger.NewNop())
	r.Handle("/api/v1/bookings/{bookingId}/cancel", middleware.Auth(http.HandlerFunc(h.Handle))).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "100")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Cancelled(t *testing.T) {
	svc := &serviceStub{}
	rec := serve(t, svc, "/api/v1/bookings/7/cancel", `{"cancellationReason":"заболела"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.bookingID)
	assert.Equal(t, int64(100), svc.got.ActorID)
	require.NotNil(t, svc.got.CancellationReason)
	assert.Equal(t, "заболела", *svc.got.CancellationReason)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &serviceStub{}
	rec := serve(t, svc, "/api/v1/bookings/7/cancel", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.CancellationReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		status     int
		retryAfter string
	}{
		{name: "bad id", path: "/api/v1/bookings/abc/cancel", status: http.StatusBadRequest},
		{name: "reason too long", path: "/api/v1/bookings/7/cancel", body: `{"cancellationReason":"` + strings.Repeat("а", 501) + `"}`, status: http.StatusBadRequest},
		{name: "not found", path: "/api/v1/bookings/7/cancel", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "already cancelled", path: "/api/v1/bookings/7/cancel", err: bookings.ErrCannotCancel, status: http.StatusBadRequest},
		{
			name:       "row locked",
			path:       "/api/v1/bookings/7/cancel",
			err:        fmt.Errorf("%w: lock timeout", domain.ErrResourceLocked),
			status:     http.StatusServiceUnavailable,
			retryAfter: "1",
		},
		{name: "internal", path: "/api/v1/bookings/7/cancel", err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &serviceStub{err: tt.err}, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.retryAfter, rec.Header().Get("Retry-After"))
		})
	}
}
