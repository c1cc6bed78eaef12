package create_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// AvailabilityRepository интерфейс репозитория слотов доступности
type AvailabilityRepository interface {
	CreateBatch(ctx context.Context, slots []*domain.Availability) (int, error)
}

// LocationRepository интерфейс репозитория локаций
type LocationRepository interface {
	GetActive(ctx context.Context, id int64) (*domain.Location, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeZone интерфейс перевода между временем академии и UTC
type TimeZone interface {
	LocalToUTC(d types.Date, ts types.TimeString) (time.Time, error)
	UTCToLocalTime(t time.Time) types.TimeString
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
