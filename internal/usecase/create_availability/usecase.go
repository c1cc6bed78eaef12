package create_availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	locationRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/location"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// UseCase use case массового создания слотов доступности
type UseCase struct {
	availabilityRepo AvailabilityRepository
	locationRepo     LocationRepository
	txManager        TransactionManager
	timeZone         TimeZone
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	locationRepo LocationRepository,
	txManager TransactionManager,
	timeZone TimeZone,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		locationRepo:     locationRepo,
		txManager:        txManager,
		timeZone:         timeZone,
		logger:           logger,
	}
}

// Execute создаёт по одному 30-минутному слоту на каждый шаг окна в каждый выбранный день.
// Существующие слоты не трогаются и учитываются как пропущенные.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAvailability: admin=%d, location=%d, range=%s..%s, window=%s-%s, weekdays=%v",
		req.Principal.UserID, req.LocationID, req.From.String(), req.To.String(), req.StartTime, req.EndTime, req.Weekdays)

	// 1. Только администратор
	if !req.Principal.IsAdmin() {
		uc.logger.Warn("CreateAvailability: user=%d with role %q is not an admin", req.Principal.UserID, req.Principal.Role)
		return nil, ErrAccessDenied
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAvailability: validation failed: %v", err)
		return nil, err
	}

	// 3. Локация должна существовать
	if _, err := uc.locationRepo.GetActive(ctx, req.LocationID); err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("CreateAvailability: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("CreateAvailability: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}

	// 4. Разворачиваем параметры в слоты
	slots, err := uc.expand(req)
	if err != nil {
		uc.logger.Error("CreateAvailability: failed to expand slots: %v", err)
		return nil, err
	}
	if len(slots) == 0 {
		uc.logger.Warn("CreateAvailability: no slots for the given parameters")
		return nil, ErrNoSlots
	}

	// 5. Вставляем одной транзакцией
	var created int
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		n, err := uc.availabilityRepo.CreateBatch(txCtx, slots)
		if err != nil {
			return err
		}
		created = n
		return nil
	})
	if err != nil {
		uc.logger.Error("CreateAvailability: failed to insert %d slots: %v", len(slots), err)
		return nil, fmt.Errorf("%w: failed to insert slots: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAvailability: location=%d, %d created, %d skipped", req.LocationID, created, len(slots)-created)

	return &Response{
		LocationID: req.LocationID,
		Requested:  len(slots),
		Created:    created,
		Skipped:    len(slots) - created,
	}, nil
}

// expand строит слоты в UTC. Время, которого нет в день перехода на летнее время, пропускается.
func (uc *UseCase) expand(req *Request) ([]*domain.Availability, error) {
	weekdays := make(map[time.Weekday]bool, len(req.Weekdays))
	for _, wd := range req.Weekdays {
		weekdays[wd] = true
	}

	capacity := req.MaxCapacity
	if capacity == 0 {
		capacity = domain.DefaultMaxCapacity
	}
	serviceName := strings.TrimSpace(req.ServiceName)

	startMin, endMin := req.StartTime.Minutes(), windowEnd(req.EndTime)

	var slots []*domain.Availability
	for d := req.From; !d.After(req.To); d = d.AddDays(1) {
		if len(weekdays) > 0 && !weekdays[d.Weekday()] {
			continue
		}

		for m := startMin; m+domain.SlotDurationMinutes <= endMin; m += domain.SlotDurationMinutes {
			ts, err := types.NewTimeStringFromMinutes(m)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}

			start, err := uc.timeZone.LocalToUTC(d, ts)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if uc.timeZone.UTCToLocalTime(start) != ts {
				continue
			}

			slots = append(slots, &domain.Availability{
				LocationID:  req.LocationID,
				StartTime:   start,
				EndTime:     start.Add(domain.SlotDurationMinutes * time.Minute),
				ServiceName: serviceName,
				MaxCapacity: capacity,
			})
		}
	}

	return slots, nil
}
