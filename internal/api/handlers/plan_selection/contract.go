package plan_selection

import (
	"context"

	planSelection "github.com/m04kA/SMC-CourtBooking/internal/usecase/plan_selection"
)

type PlanSelectionUseCase interface {
	Execute(ctx context.Context, req *planSelection.Request) (*planSelection.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
