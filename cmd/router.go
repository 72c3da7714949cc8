package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SpaBookingService/pkg/metrics"
)

// apiHandlers обработчики всех маршрутов API
type apiHandlers struct {
	availabilitySummary http.HandlerFunc
	availableSlots      http.HandlerFunc
	validateBooking     http.HandlerFunc
	conflicts           http.HandlerFunc

	createBooking         http.HandlerFunc
	getBooking            http.HandlerFunc
	getBookingByReference http.HandlerFunc
	updateBookingStatus   http.HandlerFunc
	cancelBooking         http.HandlerFunc
	rescheduleBooking     http.HandlerFunc
	bookingHistory        http.HandlerFunc
	customerBookings      http.HandlerFunc
}

// newRouter регистрирует маршруты и middleware
// Если m == nil, метрики и их endpoint не подключаются
func newRouter(h apiHandlers, log *zap.Logger, m *metrics.Metrics, metricsPath string) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(log))
	r.Use(middleware.Logger(log))

	// Добавляем metrics middleware (если метрики включены)
	if m != nil {
		r.Use(middleware.MetricsMiddleware(m))
		r.Handle(metricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/availability/summary", h.availabilitySummary).Methods(http.MethodGet)
	api.HandleFunc("/availability/slots", h.availableSlots).Methods(http.MethodGet)
	api.HandleFunc("/availability/validate", h.validateBooking).Methods(http.MethodPost)
	api.HandleFunc("/availability/conflicts", h.conflicts).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// /bookings/reference/{reference} регистрируется раньше /bookings/{bookingId}
	protected.HandleFunc("/bookings", h.createBooking).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/reference/{reference}", h.getBookingByReference).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", h.getBooking).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/status", h.updateBookingStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", h.cancelBooking).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/schedule", h.rescheduleBooking).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/history", h.bookingHistory).Methods(http.MethodGet)

	// --- Клиенты ---
	protected.HandleFunc("/customers/{customerId}/bookings", h.customerBookings).Methods(http.MethodGet)

	return r
}
