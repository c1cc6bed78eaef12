package compute_heatmap

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// UseCase use case тепловой карты доступности по дням.
//
// День "открыт", если в нём есть хотя бы один слот с is_booked = false в пределах
// UTC-интервала локальной даты. Посчитанные дни накапливаются в кеше сессии клиента:
// расширение диапазона досчитывает только новые дни, смена фильтра локации
// сбрасывает запись целиком.
type UseCase struct {
	availabilityRepo AvailabilityRepository
	timeZone         TimeZone
	cache            Cache
	maxDays          int
	loads            singleflight.Group
	logger           Logger
}

// NewUseCase создает новый экземпляр use case. cache может быть nil.
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	timeZone TimeZone,
	cache Cache,
	maxDays int,
	logger Logger,
) *UseCase {
	if maxDays <= 0 {
		maxDays = domain.DefaultMaxHeatmapDays
	}
	return &UseCase{
		availabilityRepo: availabilityRepo,
		timeZone:         timeZone,
		cache:            cache,
		maxDays:          maxDays,
		logger:           logger,
	}
}

// Execute возвращает признак "есть открытый слот" для каждого дня диапазона
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ComputeHeatmap: session=%q, range=%s..%s, location=%v",
		req.SessionID, req.From.String(), req.To.String(), req.LocationID)

	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("ComputeHeatmap: validation failed: %v", err)
		return nil, err
	}

	// 2. Накопленные дни сессии
	entry := uc.loadEntry(ctx, req)

	// 3. Досчитываем недостающие дни
	missing := missingDays(entry, req.From, req.To)
	if len(missing) > 0 {
		computed, err := uc.compute(ctx, req.LocationID, missing[0], missing[len(missing)-1])
		if err != nil {
			return nil, err
		}
		for _, d := range missing {
			entry.Days[d.String()] = computed[d.String()]
		}
		uc.storeEntry(ctx, req.SessionID, entry)
	}

	// 4. Ответ в порядке дат
	days := make([]Day, 0, req.From.DaysUntil(req.To)+1)
	for d := req.From; !d.After(req.To); d = d.AddDays(1) {
		days = append(days, Day{Date: d, HasOpenSlot: entry.Days[d.String()]})
	}

	uc.logger.Info("ComputeHeatmap: %d days returned, %d computed", len(days), len(missing))

	return &Response{
		From:       req.From,
		To:         req.To,
		LocationID: req.LocationID,
		Days:       days,
		Computed:   len(missing),
	}, nil
}

func (uc *UseCase) validateRequest(req *Request) error {
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	if req.LocationID != nil && *req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}
	if days := req.From.DaysUntil(req.To) + 1; days > uc.maxDays {
		return fmt.Errorf("%w: %d days requested, max %d", ErrRangeTooLarge, days, uc.maxDays)
	}
	return nil
}

// loadEntry достаёт запись сессии. Ошибка кеша не фатальна: считаем заново.
func (uc *UseCase) loadEntry(ctx context.Context, req *Request) *Entry {
	if uc.cache == nil || req.SessionID == "" {
		return newEntry(req.LocationID)
	}

	entry, err := uc.cache.Load(ctx, req.SessionID)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn("ComputeHeatmap: failed to load cache for session %q: %v", req.SessionID, err)
		}
		return newEntry(req.LocationID)
	}

	if !entry.matches(req.LocationID) {
		uc.logger.Info("ComputeHeatmap: location filter changed for session %q, cache reset", req.SessionID)
		return newEntry(req.LocationID)
	}

	return entry
}

func (uc *UseCase) storeEntry(ctx context.Context, sessionID string, entry *Entry) {
	if uc.cache == nil || sessionID == "" {
		return
	}
	if err := uc.cache.Store(ctx, sessionID, entry); err != nil {
		uc.logger.Warn("ComputeHeatmap: failed to store cache for session %q: %v", sessionID, err)
	}
}

// compute считает дни [from, to] одним запросом. Одинаковые параллельные
// запросы разных клиентов схлопываются в один.
func (uc *UseCase) compute(ctx context.Context, locationID *int64, from, to types.Date) (map[string]bool, error) {
	key := fmt.Sprintf("%s|%s|%s", from.String(), to.String(), locationKey(locationID))

	v, err, shared := uc.loads.Do(key, func() (interface{}, error) {
		startUTC, endUTC := uc.timeZone.LocalRangeToUTC(from, to)

		slots, err := uc.availabilityRepo.List(ctx, domain.AvailabilityFilter{
			From:       startUTC,
			To:         endUTC,
			LocationID: locationID,
			OnlyOpen:   true,
		})
		if err != nil {
			return nil, err
		}

		days := make(map[string]bool, from.DaysUntil(to)+1)
		for d := from; !d.After(to); d = d.AddDays(1) {
			days[d.String()] = false
		}
		for _, slot := range slots {
			d := uc.timeZone.UTCToLocalDate(slot.StartTime).String()
			if _, ok := days[d]; ok {
				days[d] = true
			}
		}
		return days, nil
	})
	if err != nil {
		uc.logger.Error("ComputeHeatmap: failed to load availability %s..%s: %v", from.String(), to.String(), err)
		return nil, fmt.Errorf("%w: failed to load availability: %v", ErrInternal, err)
	}
	if shared {
		uc.logger.Info("ComputeHeatmap: reused concurrent load %s", key)
	}

	// Результат общий для всех ожидающих, поэтому только читаем
	return v.(map[string]bool), nil
}

// missingDays дни диапазона, которых нет в записи, по возрастанию
func missingDays(entry *Entry, from, to types.Date) []types.Date {
	var missing []types.Date
	for d := from; !d.After(to); d = d.AddDays(1) {
		if _, ok := entry.Days[d.String()]; !ok {
			missing = append(missing, d)
		}
	}
	return missing
}

func locationKey(locationID *int64) string {
	if locationID == nil {
		return "all"
	}
	return fmt.Sprintf("%d", *locationID)
}
