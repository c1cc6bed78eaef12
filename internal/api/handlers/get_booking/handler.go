package get_booking

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

const msgInvalidBookingID = "некорректный ID бронирования"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.RequirePrincipal(w, r)
	if !ok {
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Сервис сам проверит права доступа
	view, err := h.service.GetBooking(r.Context(), &models.GetBookingRequest{
		Principal: principal,
		BookingID: bookingID,
	})
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Failed: booking_id=%d, user_id=%d, error=%v", bookingID, principal.UserID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, FromServiceView(view))
}
