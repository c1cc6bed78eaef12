package capacity

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrRangeNotCovered возвращается, когда на интервал нет непрерывной цепочки слотов доступности
	ErrRangeNotCovered = fmt.Errorf("%w: capacity: no availability covers the requested range", domain.ErrNotFound)

	// ErrCapacityExceeded возвращается, когда хотя бы один слот интервала уже заполнен
	ErrCapacityExceeded = fmt.Errorf("%w: capacity: slot is at max occupancy", domain.ErrCapacityExceeded)

	// ErrAlreadyBooked возвращается, когда пользователь уже записан на эту сессию
	ErrAlreadyBooked = fmt.Errorf("%w: capacity: user already holds a booking for this session", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда освобождаемое бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: capacity: booking not found", domain.ErrNotFound)

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = fmt.Errorf("%w: capacity: internal error", domain.ErrDependency)
)
