// Package bookings implements the booking lifecycle: self-service cancellation inside
// the free window, cancel and rain-check requests, their review by an admin and the
// release/refund cascade that follows an approval.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Config политика жизненного цикла
type Config struct {
	// FreeCancellationHour час (по времени академии) накануне занятия,
	// до которого студент может отменить бронирование без заявки
	FreeCancellationHour int
	// OperationTimeout ограничивает переход, отвязанный от отмены HTTP запроса
	OperationTimeout time.Duration
}

const defaultOperationTimeout = 30 * time.Second

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo  BookingRepository
	requestRepo  RequestRepository
	historyRepo  HistoryRepository
	gate         CapacityGate
	wallet       WalletClient
	notifier     Notifier
	timeZone     TimeZone
	timeProvider TimeProvider
	cfg          Config
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	requestRepo RequestRepository,
	historyRepo HistoryRepository,
	gate CapacityGate,
	wallet WalletClient,
	notifier Notifier,
	timeZone TimeZone,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.FreeCancellationHour < 0 || cfg.FreeCancellationHour > 23 {
		cfg.FreeCancellationHour = domain.DefaultFreeCancellationHour
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = defaultOperationTimeout
	}
	return &Service{
		bookingRepo:  bookingRepo,
		requestRepo:  requestRepo,
		historyRepo:  historyRepo,
		gate:         gate,
		wallet:       wallet,
		notifier:     notifier,
		timeZone:     timeZone,
		timeProvider: &RealTimeProvider{},
		cfg:          cfg,
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// FreeCancellationDeadline возвращает момент, до которого бронирование можно отменить
// без заявки: накануне даты занятия (по времени академии) в FreeCancellationHour:00.
func (s *Service) FreeCancellationDeadline(booking *domain.Booking) (time.Time, error) {
	localDate := s.timeZone.UTCToLocalDate(booking.StartTime)

	cutoff, err := types.NewTimeStringFromMinutes(s.cfg.FreeCancellationHour * 60)
	if err != nil {
		return time.Time{}, err
	}

	return s.timeZone.LocalToUTC(localDate.AddDays(-1), cutoff)
}

// Вспомогательные методы

// detach отвязывает переход от отмены запроса: начатое одобрение или отмена доводится до конца
func (s *Service) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.cfg.OperationTimeout)
}

// getBooking получает бронирование и переводит ошибки репозитория в ошибки сервиса
func (s *Service) getBooking(ctx context.Context, op string, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - get booking: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// release удаляет бронирование через CapacityGate
func (s *Service) release(ctx context.Context, op string, bookingID int64) (*domain.Booking, error) {
	released, err := s.gate.ReleaseBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: booking id=%d disappeared before release", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: failed to release booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - booking id=%d: %v", ErrReleaseFailed, op, bookingID, err)
	}
	return released, nil
}

// refund возвращает кредиты за удалённое бронирование. Бесплатные бронирования пропускаются.
// Ошибка не прерывает операцию: она попадает в RefundResult и даёт исход PartialSuccess.
func (s *Service) refund(ctx context.Context, op string, booking *domain.Booking, key string) models.RefundResult {
	result := models.RefundResult{Amount: booking.CreditCost, IdempotencyKey: key}
	if !booking.HasRefundableCost() {
		return result
	}

	result.Attempted = true
	if err := s.wallet.CreditBalance(ctx, booking.UserID, booking.CreditCost, key); err != nil {
		s.logger.Error("%s: refund of %.2f to user=%d failed, key=%s, manual follow-up required: %v",
			op, booking.CreditCost, booking.UserID, key, err)
		result.Err = err
		return result
	}

	s.logger.Info("%s: refunded %.2f to user=%d, key=%s", op, booking.CreditCost, booking.UserID, key)
	return result
}

// writeHistory сохраняет снимок бронирования. Ошибка только логируется.
func (s *Service) writeHistory(ctx context.Context, op string, record *domain.CancellationHistoryRecord) {
	if err := s.historyRepo.Create(ctx, record); err != nil {
		s.logger.Error("%s: failed to write cancellation history for booking id=%d: %v", op, record.BookingID, err)
		return
	}
	s.logger.Info("%s: cancellation history written for booking id=%d", op, record.BookingID)
}

// notify отправляет уведомление. Ошибка только логируется.
func (s *Service) notify(ctx context.Context, op string, kind notifications.Kind, booking *domain.Booking,
	requestID *int64, reason string, refund models.RefundResult) {
	notice := &notifications.CancellationNotice{
		Kind:          kind,
		BookingID:     booking.ID,
		RequestID:     requestID,
		UserID:        booking.UserID,
		CoachID:       booking.CoachID,
		LocationID:    booking.LocationID,
		StartTime:     booking.StartTime,
		EndTime:       booking.EndTime,
		ServiceName:   booking.ServiceName,
		Reason:        reason,
		RefundAmount:  refund.Amount,
		RefundPending: refund.Failed(),
		OccurredAt:    s.timeProvider.Now().UTC(),
	}
	if err := s.notifier.NotifyCancellation(ctx, notice); err != nil {
		s.logger.Warn("%s: notification for booking id=%d failed: %v", op, booking.ID, err)
	}
}

// outcome определяет итог операции по результату возврата
func outcome(refund models.RefundResult) domain.Outcome {
	if refund.Failed() {
		return domain.OutcomePartialSuccess
	}
	return domain.OutcomeCompleted
}

// normalizeReason обрезает пробелы и проверяет длину причины
func normalizeReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) > domain.MaxReasonLength {
		return "", fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	return reason, nil
}
