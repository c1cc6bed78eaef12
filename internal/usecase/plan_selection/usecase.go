package plan_selection

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// UseCase use case планирования выбора слотов на день
type UseCase struct {
	availabilityRepo AvailabilityRepository
	timeZone         TimeZone
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	timeZone TimeZone,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		timeZone:         timeZone,
		logger:           logger,
	}
}

// Execute загружает открытые слоты дня и применяет к выбору клик по слоту.
// При ErrIncompleteMinimumBlock выбор не меняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PlanSelection: date=%s, location=%v, slot=%d@%s",
		req.Date.String(), req.LocationID, req.Candidate.LocationID, req.Candidate.Start)

	// 1. Валидация входных данных
	candidateStart, err := types.NewTimeStringFromString(string(req.Candidate.Start))
	if err != nil {
		uc.logger.Warn("PlanSelection: invalid slot time %q", req.Candidate.Start)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	req.Candidate.Start = candidateStart

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("PlanSelection: validation failed: %v", err)
		return nil, err
	}

	selection, err := normalizeSelection(req.Selection)
	if err != nil {
		uc.logger.Warn("PlanSelection: invalid selection: %v", err)
		return nil, err
	}

	// 2. Открытые слоты дня
	open, err := uc.loadOpenSlots(ctx, req.Date, req.LocationID)
	if err != nil {
		return nil, err
	}

	// 3. Применяем клик
	next, err := Toggle(selection, open, req.Candidate)
	if err != nil {
		uc.logger.Warn("PlanSelection: slot %d@%s rejected: %v", req.Candidate.LocationID, req.Candidate.Start, err)
		return nil, err
	}

	response := &Response{
		Date:      req.Date,
		Selection: next,
		Valid:     IsValid(next),
		Summary:   Summarize(next),
	}

	uc.logger.Info("PlanSelection: %d minutes selected, valid=%t", response.Summary.TotalMinutes, response.Valid)
	return response, nil
}

// loadOpenSlots возвращает открытые слоты дня: is_booked = false
// в пределах UTC-интервала локальной даты
func (uc *UseCase) loadOpenSlots(ctx context.Context, date types.Date, locationID *int64) (OpenSlots, error) {
	from, to := uc.timeZone.LocalDateToUTCRange(date)

	slots, err := uc.availabilityRepo.List(ctx, domain.AvailabilityFilter{
		From:       from,
		To:         to,
		LocationID: locationID,
		OnlyOpen:   true,
	})
	if err != nil {
		uc.logger.Error("PlanSelection: failed to load availability for %s: %v", date.String(), err)
		return nil, fmt.Errorf("%w: failed to load availability: %v", ErrInternal, err)
	}

	open := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		open = append(open, Slot{
			LocationID: slot.LocationID,
			Start:      uc.timeZone.UTCToLocalTime(slot.StartTime),
		})
	}

	return NewOpenSlots(open), nil
}
