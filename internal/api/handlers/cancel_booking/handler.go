package cancel_booking

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
)

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

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.RequirePrincipal(w, r)
	if !ok {
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Тело необязательно: до дедлайна причина не нужна
	var req CancelBookingRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeAndValidate(r, &req); err != nil {
			h.logger.Warn("POST /bookings/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.service.RequestCancellation(r.Context(), req.ToServiceRequest(principal, bookingID))
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Failed: booking_id=%d, user_id=%d, error=%v",
			bookingID, principal.UserID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	status := http.StatusOK
	if result.Action == models.ActionRequestCreated {
		status = http.StatusAccepted
	}

	h.logger.Info("POST /bookings/{id}/cancel - %s: booking_id=%d, user_id=%d, outcome=%s",
		result.Action, bookingID, principal.UserID, result.Outcome)
	handlers.RespondJSON(w, status, FromServiceResult(result))
}
