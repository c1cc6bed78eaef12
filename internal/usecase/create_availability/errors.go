package create_availability

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrLocationNotFound возвращается, когда локация не найдена или удалена
	ErrLocationNotFound = fmt.Errorf("%w: create_availability: location not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, если вызывающий не администратор
	ErrAccessDenied = fmt.Errorf("%w: create_availability: only admins can create availability", domain.ErrNotAuthorized)

	// ErrNoSlots возвращается, когда по параметрам не получилось ни одного слота
	ErrNoSlots = fmt.Errorf("%w: create_availability: parameters produce no slots", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_availability: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: create_availability: internal error", domain.ErrDependency)
)
