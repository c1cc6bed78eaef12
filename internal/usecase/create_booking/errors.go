package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrLocationNotFound возвращается, когда локация не найдена или удалена
	ErrLocationNotFound = fmt.Errorf("%w: create_booking: location not found", domain.ErrNotFound)

	// ErrSlotNotFound возвращается, когда интервал не покрыт слотами доступности
	ErrSlotNotFound = fmt.Errorf("%w: create_booking: no availability for the requested range", domain.ErrNotFound)

	// ErrSlotNotAvailable возвращается, когда выбранный слот недоступен (все места заняты)
	ErrSlotNotAvailable = fmt.Errorf("%w: create_booking: slot is not available", domain.ErrCapacityExceeded)

	// ErrAlreadyBooked возвращается, когда пользователь уже записан на эту сессию
	ErrAlreadyBooked = fmt.Errorf("%w: create_booking: user already booked this session", domain.ErrValidation)

	// ErrBookingInPast возвращается при попытке забронировать уже начавшийся интервал
	ErrBookingInPast = fmt.Errorf("%w: create_booking: booking must start in the future", domain.ErrValidation)

	// ErrAccessDenied возвращается, когда роль не позволяет бронировать
	ErrAccessDenied = fmt.Errorf("%w: create_booking: access denied", domain.ErrNotAuthorized)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_booking: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: create_booking: internal error", domain.ErrDependency)
)
