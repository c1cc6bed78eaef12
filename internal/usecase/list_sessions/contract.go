package list_sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetProfilesWithGracefulDegradation(ctx context.Context, userIDs []int64) (map[int64]domain.Profile, error)
}

// TimeZone интерфейс перевода между временем академии и UTC
type TimeZone interface {
	LocalRangeToUTC(from, to types.Date) (time.Time, time.Time)
	UTCToLocalDate(t time.Time) types.Date
	UTCToLocalTime(t time.Time) types.TimeString
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
