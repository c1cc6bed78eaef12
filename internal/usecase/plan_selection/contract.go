package plan_selection

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// AvailabilityRepository интерфейс репозитория слотов доступности
type AvailabilityRepository interface {
	List(ctx context.Context, filter domain.AvailabilityFilter) ([]*domain.Availability, error)
}

// TimeZone интерфейс перевода между временем академии и UTC
type TimeZone interface {
	LocalDateToUTCRange(d types.Date) (time.Time, time.Time)
	UTCToLocalTime(t time.Time) types.TimeString
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
