package create_booking

import (
	"fmt"
	"math"
	"strings"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime != EndOfDay {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
	}

	start, end := req.StartTime.Minutes(), endMinutes(req.EndTime)

	if start%domain.SlotDurationMinutes != 0 || end%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: times must fall on a %d-minute boundary", ErrInvalidInput, domain.SlotDurationMinutes)
	}

	if end-start < domain.MinSessionMinutes {
		return fmt.Errorf("%w: session must last at least %d minutes", ErrInvalidInput, domain.MinSessionMinutes)
	}

	if req.CreditCost < 0 || math.IsNaN(req.CreditCost) || math.IsInf(req.CreditCost, 0) {
		return fmt.Errorf("%w: creditCost must be a non-negative number", ErrInvalidInput)
	}

	if len(strings.TrimSpace(req.ServiceName)) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: serviceName is too long (max %d)", ErrInvalidInput, domain.MaxServiceNameLength)
	}

	return nil
}

// resolveUserID определяет, за кого создаётся бронирование.
// Ученик бронирует только себе, администратор - за указанного ученика.
func resolveUserID(req *Request) (int64, error) {
	switch {
	case req.Principal.IsStudent():
		if req.UserID != nil && *req.UserID != req.Principal.UserID {
			return 0, fmt.Errorf("%w: students may only book for themselves", ErrAccessDenied)
		}
		return req.Principal.UserID, nil
	case req.Principal.IsAdmin():
		if req.UserID == nil || *req.UserID <= 0 {
			return 0, fmt.Errorf("%w: userID is required when booking on behalf of a student", ErrInvalidInput)
		}
		return *req.UserID, nil
	default:
		return 0, fmt.Errorf("%w: role %q cannot create bookings", ErrAccessDenied, req.Principal.Role)
	}
}

// checkCreditCost стоимость задаёт только администратор, оформляющий уже оплаченное бронирование
func checkCreditCost(req *Request) error {
	if req.CreditCost != 0 && !req.Principal.IsAdmin() {
		return fmt.Errorf("%w: creditCost can only be set by an administrator", ErrAccessDenied)
	}
	return nil
}

func endMinutes(ts types.TimeString) int {
	if ts == EndOfDay {
		return 24 * 60
	}
	return ts.Minutes()
}
