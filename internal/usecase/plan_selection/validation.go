package plan_selection

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.LocationID != nil && *req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.LocationID != nil && req.Candidate.LocationID != *req.LocationID {
		return fmt.Errorf("%w: slot does not belong to the filtered location", ErrInvalidInput)
	}

	return validateSlot(req.Candidate)
}

// normalizeSelection приводит время к виду "HH:MM" и отбрасывает некорректные записи.
// Клиент хранит выбор у себя, поэтому ему не доверяем.
func normalizeSelection(sel Selection) (Selection, error) {
	normalized := make(Selection, len(sel))
	for loc, slots := range sel {
		if loc <= 0 {
			return nil, fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
		}
		for _, s := range slots {
			ts, err := types.NewTimeStringFromString(string(s))
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			normalized[loc] = append(normalized[loc], ts)
		}
		if !isContiguous(normalized[loc]) {
			return nil, fmt.Errorf("%w: selection for location %d is not contiguous", ErrInvalidInput, loc)
		}
	}
	return normalized, nil
}

func isContiguous(slots []types.TimeString) bool {
	for i := 1; i < len(slots); i++ {
		if slots[i].Minutes()-slots[i-1].Minutes() != domain.SlotDurationMinutes {
			return false
		}
	}
	return true
}
