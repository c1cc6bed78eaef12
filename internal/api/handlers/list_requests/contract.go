package list_requests

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

type BookingService interface {
	ListRequests(ctx context.Context, req *models.ListRequestsRequest) ([]*domain.BookingRequest, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
