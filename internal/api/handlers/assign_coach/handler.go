package assign_coach

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

// Handle PUT /api/v1/bookings/{bookingId}/coach
// Тренер назначается всей сессии, к которой относится бронирование
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.RequirePrincipal(w, r)
	if !ok {
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/coach - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req AssignCoachRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id}/coach - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AssignCoach(r.Context(), &models.AssignCoachRequest{
		Principal: principal,
		BookingID: bookingID,
		CoachID:   req.CoachID,
	})
	if err != nil {
		h.logger.Warn("PUT /bookings/{id}/coach - Failed: booking_id=%d, user_id=%d, error=%v",
			bookingID, principal.UserID, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PUT /bookings/{id}/coach - Coach assigned: booking_id=%d, affected=%d", bookingID, result.Affected)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResult(result))
}
