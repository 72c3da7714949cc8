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

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SpaBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
	"github.com/m04kA/SMC-SpaBookingService/pkg/types"
)

type useCaseStub struct {
	got *createBooking.Request
	err error
}

func (s *useCaseStub) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &createBooking.Response{
		ID:              7,
		Reference:       uuid.MustParse("5f0c7d8e-2a31-4b8e-9d0a-1c2b3d4e5f60"),
		CustomerID:      req.CustomerID,
		ServiceID:       req.ServiceID,
		StaffID:         req.StaffID,
		RoomID:          req.RoomID,
		BookingDate:     req.Date,
		StartTime:       req.StartTime,
		EndTime:         types.MustTimeString("11:00"),
		DurationMinutes: 60,
		Status:          string(domain.StatusConfirmed),
		ServiceName:     "Классический массаж",
		ServicePrice:    3500,
		CreatedAt:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

const validBody = `{"serviceId":1,"staffId":1,"roomId":1,"bookingDate":"2026-03-10","startTime":"10:00"}`

func serve(t *testing.T, uc *useCaseStub, userID string, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.HeaderUserID, userID)
	}
	rec := httptest.NewRecorder()
	middleware.Auth(http.HandlerFunc(h.Handle)).ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &useCaseStub{}
	rec := serve(t, uc, "100", validBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(100), uc.got.CustomerID)
	assert.Equal(t, types.MustTimeString("10:00"), uc.got.StartTime)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), uc.got.Date)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "2026-03-10", resp.BookingDate)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestHandle_RequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		body   string
		status int
	}{
		{name: "no user", userID: "", body: validBody, status: http.StatusUnauthorized},
		{name: "malformed json", userID: "100", body: `{"serviceId":`, status: http.StatusBadRequest},
		{name: "unknown field", userID: "100", body: `{"serviceId":1,"extra":true}`, status: http.StatusBadRequest},
		{name: "missing room", userID: "100", body: `{"serviceId":1,"staffId":1,"bookingDate":"2026-03-10","startTime":"10:00"}`, status: http.StatusBadRequest},
		{name: "bad date", userID: "100", body: `{"serviceId":1,"staffId":1,"roomId":1,"bookingDate":"10.03.2026","startTime":"10:00"}`, status: http.StatusBadRequest},
		{name: "bad time", userID: "100", body: `{"serviceId":1,"staffId":1,"roomId":1,"bookingDate":"2026-03-10","startTime":"25:00"}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &useCaseStub{}
			rec := serve(t, uc, tt.userID, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_ValidationFieldsInResponse(t *testing.T) {
	rec := serve(t, &useCaseStub{}, "100", `{"serviceId":1,"staffId":1,"bookingDate":"2026-03-10","startTime":"9"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "roomId")
	assert.Contains(t, resp.Fields, "startTime")
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		status     int
		retryAfter string
	}{
		{name: "date in the past", err: createBooking.ErrInvalidDate, status: http.StatusBadRequest},
		{name: "outside hours", err: createBooking.ErrOutsideBusinessHours, status: http.StatusBadRequest},
		{name: "service not found", err: fmt.Errorf("%w: service", domain.ErrNotFound), status: http.StatusNotFound},
		{name: "incompatible", err: fmt.Errorf("%w: drainage", domain.ErrIncompatibleResource), status: http.StatusUnprocessableEntity},
		{name: "room busy", err: domain.ErrRoomUnavailable, status: http.StatusConflict},
		{name: "staff busy", err: domain.ErrStaffUnavailable, status: http.StatusConflict},
		{name: "not scheduled", err: domain.ErrStaffNotScheduled, status: http.StatusConflict},
		{name: "locked", err: domain.ErrResourceLocked, status: http.StatusServiceUnavailable, retryAfter: "1"},
		{name: "internal", err: createBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &useCaseStub{err: tt.err}, "100", validBody)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.retryAfter, rec.Header().Get("Retry-After"))
		})
	}
}
