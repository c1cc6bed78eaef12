package batch_raincheck

import (
	"context"

	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

type BookingService interface {
	BatchRaincheck(ctx context.Context, req *models.BatchRaincheckRequest) (*models.BatchRaincheckResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
