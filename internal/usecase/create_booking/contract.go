package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// CapacityGate интерфейс контроля вместимости слотов
type CapacityGate interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	GetActive(ctx context.Context, id int64) (*domain.Location, error)
}

// TimeZone интерфейс перевода между временем академии и UTC
type TimeZone interface {
	LocalToUTC(d types.Date, ts types.TimeString) (time.Time, error)
	UTCToLocalDate(t time.Time) types.Date
	UTCToLocalTime(t time.Time) types.TimeString
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
