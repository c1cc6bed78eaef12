package capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

// AvailabilityRepository интерфейс репозитория слотов доступности
type AvailabilityRepository interface {
	ListWithin(ctx context.Context, locationID int64, start, end time.Time) ([]*domain.Availability, error)
	SetBooked(ctx context.Context, id int64, booked bool) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CountOverlapping(ctx context.Context, locationID int64, start, end time.Time) (int, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
