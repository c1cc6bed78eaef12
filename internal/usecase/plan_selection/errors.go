package plan_selection

import (
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrIncompleteMinimumBlock возвращается, когда от выбранного слота нельзя набрать минимальный час
	ErrIncompleteMinimumBlock = fmt.Errorf("%w: the following 30-minute slot is not available", domain.ErrIncompleteMinimumBlock)

	// ErrSlotNotOpen возвращается при клике по слоту, которого нет среди открытых
	ErrSlotNotOpen = fmt.Errorf("%w: slot is not open", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: usecase: internal error", domain.ErrDependency)
)
