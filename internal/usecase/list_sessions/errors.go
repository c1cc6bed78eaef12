package list_sessions

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrAccessDenied возвращается при неизвестной роли
	ErrAccessDenied = fmt.Errorf("%w: list_sessions: access denied", domain.ErrNotAuthorized)

	// ErrRangeTooLarge возвращается, когда диапазон длиннее допустимого
	ErrRangeTooLarge = fmt.Errorf("%w: list_sessions: date range is too large", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: list_sessions: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: list_sessions: internal error", domain.ErrDependency)
)
