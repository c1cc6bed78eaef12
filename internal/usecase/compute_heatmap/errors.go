package compute_heatmap

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

var (
	// ErrRangeTooLarge возвращается, когда диапазон длиннее допустимого
	ErrRangeTooLarge = fmt.Errorf("%w: compute_heatmap: date range is too large", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: compute_heatmap: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: compute_heatmap: internal error", domain.ErrDependency)

	// ErrCacheMiss возвращается кешем, если записи нет
	ErrCacheMiss = errors.New("compute_heatmap: cache miss")
)
