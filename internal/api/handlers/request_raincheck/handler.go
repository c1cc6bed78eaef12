package request_raincheck

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
)

// RaincheckRequest HTTP request model
type RaincheckRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

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

// Handle POST /api/v1/bookings/{bookingId}/raincheck
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.RequirePrincipal(w, r)
	if !ok {
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/raincheck - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RaincheckRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/raincheck - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.RequestRaincheck(r.Context(), &models.RaincheckRequest{
		Principal: principal,
		BookingID: bookingID,
		Reason:    req.Reason,
	})
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/raincheck - Failed: booking_id=%d, user_id=%d, error=%v",
			bookingID, principal.UserID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /bookings/{id}/raincheck - Request created: request_id=%d, booking_id=%d", created.ID, bookingID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.NewRequestDTO(created))
}
