package bookings

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: booking not found", domain.ErrNotFound)

	// ErrRequestNotFound возвращается, когда заявка не найдена
	ErrRequestNotFound = fmt.Errorf("%w: request not found", domain.ErrNotFound)

	// ErrRequestAlreadyResolved возвращается, когда заявку уже рассмотрел другой администратор
	ErrRequestAlreadyResolved = fmt.Errorf("%w: request already resolved", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда роль не позволяет выполнить переход
	ErrAccessDenied = fmt.Errorf("%w: access denied", domain.ErrNotAuthorized)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrReasonRequired возвращается, когда заявка подаётся без причины
	ErrReasonRequired = fmt.Errorf("%w: reason is required", domain.ErrValidation)

	// ErrDuplicatePendingRequest возвращается, когда на бронирование уже есть ожидающая заявка того же типа
	ErrDuplicatePendingRequest = fmt.Errorf("%w: a pending request of this type already exists", domain.ErrDuplicatePendingRequest)

	// ErrPendingRequestExists возвращается при самостоятельной отмене, пока бронирование ждёт решения по заявке
	ErrPendingRequestExists = fmt.Errorf("%w: booking has a pending request awaiting review", domain.ErrDuplicatePendingRequest)

	// ErrReleaseFailed возвращается, когда заявка одобрена, но бронирование удалить не удалось.
	// Требуется ручное вмешательство оператора.
	ErrReleaseFailed = fmt.Errorf("%w: request approved but booking release failed", domain.ErrDependency)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: service: internal error", domain.ErrDependency)
)
