package cancel_booking

import (
	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

// CancelBookingResponse HTTP response model.
// action = cancelled: бронирование удалено сразу, refund заполнен;
// action = request_created: создана заявка, request заполнен.
type CancelBookingResponse struct {
	Action  string               `json:"action"`
	Outcome string               `json:"outcome,omitempty"`
	Booking *handlers.BookingDTO `json:"booking,omitempty"`
	Request *handlers.RequestDTO `json:"request,omitempty"`
	Refund  *handlers.RefundDTO  `json:"refund,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(principal domain.Principal, bookingID int64) *models.CancelRequest {
	return &models.CancelRequest{
		Principal: principal,
		BookingID: bookingID,
		Reason:    r.Reason,
	}
}

// FromServiceResult конвертирует результат сервиса
func FromServiceResult(res *models.CancelResult) *CancelBookingResponse {
	resp := &CancelBookingResponse{
		Action:  string(res.Action),
		Booking: handlers.NewBookingDTO(res.Booking),
		Request: handlers.NewRequestDTO(res.Request),
	}
	if res.Action == models.ActionCancelled {
		refund := handlers.NewRefundDTO(res.Refund)
		resp.Refund = &refund
		resp.Outcome = string(res.Outcome)
	}
	return resp
}
