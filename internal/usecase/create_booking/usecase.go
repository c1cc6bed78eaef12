package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	locationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/location"
	"github.com/m04kA/SMC-CourtBooking/internal/service/capacity"
)

const defaultOperationTimeout = 30 * time.Second

// UseCase use case для создания бронирования
type UseCase struct {
	gate             CapacityGate
	locationRepo     LocationRepository
	timeZone         TimeZone
	academyID        int64
	operationTimeout time.Duration
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	gate CapacityGate,
	locationRepo LocationRepository,
	timeZone TimeZone,
	academyID int64,
	logger Logger,
) *UseCase {
	return &UseCase{
		gate:             gate,
		locationRepo:     locationRepo,
		timeZone:         timeZone,
		academyID:        academyID,
		operationTimeout: defaultOperationTimeout,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithOperationTimeout задаёт предел на создание, не зависящий от отмены запроса
func (uc *UseCase) WithOperationTimeout(d time.Duration) *UseCase {
	if d > 0 {
		uc.operationTimeout = d
	}
	return uc
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования.
// Проверка вместимости и вставка выполняются в CapacityGate в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: principal=%d(%s), location=%d, date=%s, time=%s-%s",
		req.Principal.UserID, req.Principal.Role, req.LocationID, req.Date.String(), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка роли
	userID, err := resolveUserID(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}
	if err := checkCreditCost(req); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 3. Переводим время академии в UTC
	startUTC, endUTC, err := uc.toUTC(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to convert time: %v", err)
		return nil, err
	}

	if !startUTC.After(uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: start %s is in the past", startUTC.Format(time.RFC3339))
		return nil, ErrBookingInPast
	}

	// Начатое создание доводится до конца даже после разрыва соединения
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.operationTimeout)
	defer cancel()

	// 4. Локация должна существовать и не быть удалённой
	if _, err := uc.locationRepo.GetActive(ctx, req.LocationID); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("CreateBooking: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("CreateBooking: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// 5. Создаём бронирование через контроль вместимости
	created, err := uc.gate.CreateBooking(ctx, &domain.Booking{
		LocationID:  req.LocationID,
		UserID:      userID,
		StartTime:   startUTC,
		EndTime:     endUTC,
		ServiceName: strings.TrimSpace(req.ServiceName),
		CreditCost:  req.CreditCost,
		AcademyID:   uc.academyID,
	})
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrCapacityExceeded):
			uc.logger.Warn("CreateBooking: slot is full, location=%d", req.LocationID)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, capacity.ErrRangeNotCovered):
			uc.logger.Warn("CreateBooking: no availability for %s %s-%s", req.Date.String(), req.StartTime, req.EndTime)
			return nil, ErrSlotNotFound
		case errors.Is(err, capacity.ErrAlreadyBooked):
			uc.logger.Warn("CreateBooking: user=%d already booked this session", userID)
			return nil, ErrAlreadyBooked
		default:
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: booking id=%d created for user=%d", created.ID, created.UserID)
	return uc.toResponse(created), nil
}

func (uc *UseCase) toUTC(req *Request) (time.Time, time.Time, error) {
	start, err := uc.timeZone.LocalToUTC(req.Date, req.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	endDate, endTime := req.Date, req.EndTime
	if endTime == EndOfDay {
		endDate, endTime = req.Date.AddDays(1), "00:00"
	}

	end, err := uc.timeZone.LocalToUTC(endDate, endTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// В день перехода на летнее время интервал может схлопнуться
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	return start, end, nil
}

// toResponse преобразует доменную модель в response
func (uc *UseCase) toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:          b.ID,
		LocationID:  b.LocationID,
		UserID:      b.UserID,
		CoachID:     b.CoachID,
		Date:        uc.timeZone.UTCToLocalDate(b.StartTime),
		StartTime:   uc.timeZone.UTCToLocalTime(b.StartTime),
		EndTime:     uc.timeZone.UTCToLocalTime(b.EndTime),
		StartUTC:    b.StartTime,
		EndUTC:      b.EndTime,
		ServiceName: b.ServiceName,
		CreditCost:  b.CreditCost,
		CreatedAt:   b.CreatedAt,
	}
}
