package review_request

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

type BookingService interface {
	ApproveRequest(ctx context.Context, req *models.ReviewRequest) (*models.ApprovalResult, error)
	RejectRequest(ctx context.Context, req *models.ReviewRequest) (*domain.BookingRequest, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
