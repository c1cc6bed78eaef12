// Package capacity enforces per-slot occupancy limits.
//
// A booking covers one or more consecutive 30-minute availability slots. Creating a
// booking locks every covered slot row, counts the bookings overlapping each slot and
// inserts only when all of them still have room; the whole sequence runs in one
// serializable transaction, so concurrent bookings of the same slot are ordered by
// the database and can never jointly exceed max_capacity. Bookings of unrelated
// slots do not contend for the same rows.
package capacity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
)

// Gate точка контроля вместимости слотов
type Gate struct {
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	txManager        TransactionManager
	logger           Logger
}

// NewGate создает новый экземпляр Gate
func NewGate(
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Gate {
	return &Gate{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// CreateBooking проверяет вместимость всех слотов интервала и создаёт бронирование.
// При заполненном слоте ничего не пишет и возвращает ErrCapacityExceeded.
func (g *Gate) CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	g.logger.Info("CreateBooking: user=%d, location=%d, range=%s..%s",
		booking.UserID, booking.LocationID, booking.StartTime.Format(time.RFC3339), booking.EndTime.Format(time.RFC3339))

	var created *domain.Booking

	err := g.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем слоты интервала
		slots, err := g.availabilityRepo.ListWithin(txCtx, booking.LocationID, booking.StartTime, booking.EndTime)
		if err != nil {
			g.logger.Error("CreateBooking: failed to load slots: %v", err)
			return fmt.Errorf("%w: CreateBooking - load slots: %w", ErrInternal, err)
		}
		if !CoversContiguously(slots, booking.StartTime, booking.EndTime) {
			g.logger.Warn("CreateBooking: range is not covered by availability, location=%d", booking.LocationID)
			return ErrRangeNotCovered
		}

		// 2. Проверяем текущую занятость каждого слота
		for _, slot := range slots {
			occupancy, err := g.bookingRepo.CountOverlapping(txCtx, slot.LocationID, slot.StartTime, slot.EndTime)
			if err != nil {
				g.logger.Error("CreateBooking: failed to count occupancy for slot id=%d: %v", slot.ID, err)
				return fmt.Errorf("%w: CreateBooking - count occupancy: %w", ErrInternal, err)
			}
			if slot.IsFullAt(occupancy) {
				g.logger.Warn("CreateBooking: slot id=%d is full, %d/%d", slot.ID, occupancy, slot.MaxCapacity)
				return ErrCapacityExceeded
			}
		}

		// 3. Название услуги наследуется от слота, если не передано
		if booking.ServiceName == "" {
			booking.ServiceName = slots[0].ServiceName
		}

		// 4. Создаем бронирование
		result, err := g.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrAlreadyBooked) {
				g.logger.Warn("CreateBooking: user=%d already booked this session", booking.UserID)
				return ErrAlreadyBooked
			}
			g.logger.Error("CreateBooking: failed to insert booking: %v", err)
			return fmt.Errorf("%w: CreateBooking - insert booking: %w", ErrInternal, err)
		}

		// 5. Пересчитываем флаги заполненности
		if err := g.syncFlags(txCtx, slots); err != nil {
			return err
		}

		created = result
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCapacityExceeded) || errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrDependency) {
			return nil, err
		}
		g.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: CreateBooking - transaction: %w", ErrInternal, err)
	}

	g.logger.Info("CreateBooking: created booking id=%d", created.ID)
	return created, nil
}

// ReleaseBooking удаляет бронирование и сбрасывает флаги заполненности его слотов.
// Возвращает снимок удалённого бронирования.
func (g *Gate) ReleaseBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	g.logger.Info("ReleaseBooking: booking id=%d", bookingID)

	var released *domain.Booking

	err := g.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой
		booking, err := g.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				g.logger.Warn("ReleaseBooking: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			g.logger.Error("ReleaseBooking: failed to get booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: ReleaseBooking - get booking: %w", ErrInternal, err)
		}

		// 2. Блокируем слоты. Локация могла быть удалена, тогда слотов нет и флаги не трогаем
		slots, err := g.availabilityRepo.ListWithin(txCtx, booking.LocationID, booking.StartTime, booking.EndTime)
		if err != nil {
			g.logger.Error("ReleaseBooking: failed to load slots: %v", err)
			return fmt.Errorf("%w: ReleaseBooking - load slots: %w", ErrInternal, err)
		}

		// 3. Удаляем бронирование
		if err := g.bookingRepo.Delete(txCtx, bookingID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			g.logger.Error("ReleaseBooking: failed to delete booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: ReleaseBooking - delete booking: %w", ErrInternal, err)
		}

		// 4. Пересчитываем флаги заполненности
		if err := g.syncFlags(txCtx, slots); err != nil {
			return err
		}

		released = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDependency) {
			return nil, err
		}
		g.logger.Error("ReleaseBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: ReleaseBooking - transaction: %w", ErrInternal, err)
	}

	g.logger.Info("ReleaseBooking: released booking id=%d", bookingID)
	return released, nil
}

// syncFlags выставляет is_booked = (занятость >= max_capacity) для каждого слота
func (g *Gate) syncFlags(ctx context.Context, slots []*domain.Availability) error {
	for _, slot := range slots {
		occupancy, err := g.bookingRepo.CountOverlapping(ctx, slot.LocationID, slot.StartTime, slot.EndTime)
		if err != nil {
			g.logger.Error("syncFlags: failed to count occupancy for slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: syncFlags - count occupancy: %w", ErrInternal, err)
		}

		full := slot.IsFullAt(occupancy)
		if full == slot.IsBooked {
			continue
		}

		if err := g.availabilityRepo.SetBooked(ctx, slot.ID, full); err != nil {
			g.logger.Error("syncFlags: failed to set is_booked=%t for slot id=%d: %v", full, slot.ID, err)
			return fmt.Errorf("%w: syncFlags - set flag: %w", ErrInternal, err)
		}
		slot.IsBooked = full
	}

	return nil
}

// CoversContiguously проверяет, что отсортированные слоты начинаются в start,
// заканчиваются в end и идут друг за другом без разрывов
func CoversContiguously(slots []*domain.Availability, start, end time.Time) bool {
	if len(slots) == 0 || !start.Before(end) {
		return false
	}

	cursor := start
	for _, slot := range slots {
		if !slot.StartTime.Equal(cursor) {
			return false
		}
		cursor = slot.EndTime
	}

	return cursor.Equal(end)
}
