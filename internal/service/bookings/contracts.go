package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateCoachForSession(ctx context.Context, key domain.SessionKey, coachID *int64) (int64, error)
}

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error)
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	FindPending(ctx context.Context, bookingID int64, reqType domain.RequestType) (*domain.BookingRequest, error)
	List(ctx context.Context, status *domain.RequestStatus, limit uint64) ([]*domain.BookingRequest, error)
	Resolve(ctx context.Context, review domain.Review) error
}

// HistoryRepository интерфейс журнала отмен
type HistoryRepository interface {
	Create(ctx context.Context, record *domain.CancellationHistoryRecord) error
}

// CapacityGate освобождает бронирование с пересчётом заполненности слотов
type CapacityGate interface {
	ReleaseBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
}

// WalletClient интерфейс клиента кошелька
type WalletClient interface {
	CreditBalance(ctx context.Context, userID int64, amount float64, idempotencyKey string) error
}

// Notifier интерфейс уведомлений об отмене (fire-and-forget)
type Notifier interface {
	NotifyCancellation(ctx context.Context, notice *notifications.CancellationNotice) error
}

// TimeZone интерфейс перевода между временем академии и UTC
type TimeZone interface {
	UTCToLocalDate(t time.Time) types.Date
	LocalToUTC(d types.Date, ts types.TimeString) (time.Time, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
