package review_request

import (
	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

// ReviewBody HTTP request model, тело необязательно
type ReviewBody struct {
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ApprovalResponse итог одобрения
type ApprovalResponse struct {
	Request *handlers.RequestDTO `json:"request"`
	Booking *handlers.BookingDTO `json:"booking,omitempty"`
	Refund  handlers.RefundDTO   `json:"refund"`
	Outcome string               `json:"outcome"`
}

func (b *ReviewBody) ToServiceRequest(principal domain.Principal, requestID int64) *models.ReviewRequest {
	return &models.ReviewRequest{
		Principal: principal,
		RequestID: requestID,
		Notes:     b.Notes,
	}
}

func FromApprovalResult(res *models.ApprovalResult) *ApprovalResponse {
	return &ApprovalResponse{
		Request: handlers.NewRequestDTO(res.Request),
		Booking: handlers.NewBookingDTO(res.Booking),
		Refund:  handlers.NewRefundDTO(res.Refund),
		Outcome: string(res.Outcome),
	}
}
