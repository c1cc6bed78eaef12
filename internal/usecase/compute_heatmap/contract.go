package compute_heatmap

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
	LocalRangeToUTC(from, to types.Date) (time.Time, time.Time)
	UTCToLocalDate(t time.Time) types.Date
}

// Cache кеш тепловой карты, привязанный к сессии клиента
type Cache interface {
	Load(ctx context.Context, sessionID string) (*Entry, error)
	Store(ctx context.Context, sessionID string, entry *Entry) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
