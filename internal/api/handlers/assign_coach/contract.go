package assign_coach

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

type BookingService interface {
	AssignCoach(ctx context.Context, req *models.AssignCoachRequest) (*models.AssignCoachResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
