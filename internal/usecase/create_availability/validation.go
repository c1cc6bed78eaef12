package create_availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	if days := req.From.DaysUntil(req.To) + 1; days > domain.MaxAvailabilityDays {
		return fmt.Errorf("%w: %d days requested, max %d", ErrInvalidInput, days, domain.MaxAvailabilityDays)
	}

	for _, wd := range req.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("%w: unknown weekday %d", ErrInvalidInput, int(wd))
		}
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if req.EndTime != EndOfDay {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
	}

	start, end := req.StartTime.Minutes(), windowEnd(req.EndTime)
	if start%domain.SlotDurationMinutes != 0 || end%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: window must fall on a %d-minute boundary", ErrInvalidInput, domain.SlotDurationMinutes)
	}
	if end <= start {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ServiceName)
	if name == "" {
		return fmt.Errorf("%w: serviceName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: serviceName is too long (max %d)", ErrInvalidInput, domain.MaxServiceNameLength)
	}

	if req.MaxCapacity != 0 && (req.MaxCapacity < domain.MinCapacity || req.MaxCapacity > domain.MaxCapacity) {
		return fmt.Errorf("%w: maxCapacity must be between %d and %d", ErrInvalidInput, domain.MinCapacity, domain.MaxCapacity)
	}

	return nil
}

// windowEnd возвращает конец окна в минутах от начала суток
func windowEnd(ts types.TimeString) int {
	if ts == EndOfDay {
		return 24 * 60
	}
	return ts.Minutes()
}
