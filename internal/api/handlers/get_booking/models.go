package get_booking

import (
	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

// BookingViewResponse бронирование вместе с политикой отмены
type BookingViewResponse struct {
	Booking                  *handlers.BookingDTO `json:"booking"`
	FreeCancellationDeadline string               `json:"freeCancellationDeadline"`
	CanSelfCancel            bool                 `json:"canSelfCancel"`
}

func FromServiceView(v *models.BookingView) *BookingViewResponse {
	return &BookingViewResponse{
		Booking:                  handlers.NewBookingDTO(v.Booking),
		FreeCancellationDeadline: handlers.FormatTime(v.FreeCancellationDeadline),
		CanSelfCancel:            v.CanSelfCancel,
	}
}
