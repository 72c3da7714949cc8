package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
)

// named отвечает именем маршрута и его path-параметрами
func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		parts := []string{name}
		for _, key := range []string{"bookingId", "reference", "customerId"} {
			if v, ok := vars[key]; ok {
				parts = append(parts, key+"="+v)
			}
		}
		_, _ = w.Write([]byte(strings.Join(parts, " ")))
	}
}

func testRouter() *mux.Router {
	return newRouter(apiHandlers{
		availabilitySummary:   named("summary"),
		availableSlots:        named("slots"),
		validateBooking:       named("validate"),
		conflicts:             named("conflicts"),
		createBooking:         named("create"),
		getBooking:            named("get"),
		getBookingByReference: named("byReference"),
		updateBookingStatus:   named("status"),
		cancelBooking:         named("cancel"),
		rescheduleBooking:     named("reschedule"),
		bookingHistory:        named("history"),
		customerBookings:      named("customer"),
	}, zap.NewNop(), nil, "/metrics")
}

func TestRouter_Dispatch(t *testing.T) {
	const reference = "5f0c7d8e-2a31-4b8e-9d0a-1c2b3d4e5f60"

	tests := []struct {
		name   string
		method string
		path   string
		userID string
		status int
		body   string
	}{
		{name: "summary is public", method: http.MethodGet, path: "/api/v1/availability/summary?days=3", status: http.StatusOK, body: "summary"},
		{name: "slots is public", method: http.MethodGet, path: "/api/v1/availability/slots?date=2026-03-10", status: http.StatusOK, body: "slots"},
		{name: "validate is public", method: http.MethodPost, path: "/api/v1/availability/validate", status: http.StatusOK, body: "validate"},
		{name: "conflicts is public", method: http.MethodGet, path: "/api/v1/availability/conflicts", status: http.StatusOK, body: "conflicts"},
		{name: "create", method: http.MethodPost, path: "/api/v1/bookings", userID: "100", status: http.StatusOK, body: "create"},
		{name: "by reference", method: http.MethodGet, path: "/api/v1/bookings/reference/" + reference, userID: "100", status: http.StatusOK, body: "byReference reference=" + reference},
		{name: "by id", method: http.MethodGet, path: "/api/v1/bookings/7", userID: "100", status: http.StatusOK, body: "get bookingId=7"},
		{name: "status", method: http.MethodPatch, path: "/api/v1/bookings/7/status", userID: "100", status: http.StatusOK, body: "status bookingId=7"},
		{name: "cancel", method: http.MethodPatch, path: "/api/v1/bookings/7/cancel", userID: "100", status: http.StatusOK, body: "cancel bookingId=7"},
		{name: "reschedule", method: http.MethodPut, path: "/api/v1/bookings/7/schedule", userID: "100", status: http.StatusOK, body: "reschedule bookingId=7"},
		{name: "history", method: http.MethodGet, path: "/api/v1/bookings/7/history", userID: "100", status: http.StatusOK, body: "history bookingId=7"},
		{name: "customer bookings", method: http.MethodGet, path: "/api/v1/customers/100/bookings", userID: "100", status: http.StatusOK, body: "customer customerId=100"},
		{name: "booking needs user", method: http.MethodGet, path: "/api/v1/bookings/7", status: http.StatusUnauthorized},
		{name: "reference needs user", method: http.MethodGet, path: "/api/v1/bookings/reference/" + reference, status: http.StatusUnauthorized},
		{name: "unknown path", method: http.MethodGet, path: "/api/v1/rooms", userID: "100", status: http.StatusNotFound},
	}

	router := testRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.userID != "" {
				req.Header.Set(middleware.HeaderUserID, tt.userID)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
			if tt.status != http.StatusNotFound {
				assert.NotEmpty(t, rec.Header().Get(middleware.HeaderRequestID))
			}
		})
	}
}

func TestRouter_NoMetricsEndpointWhenDisabled(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
