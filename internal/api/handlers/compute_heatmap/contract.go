package compute_heatmap

import (
	"context"

	computeHeatmap "github.com/m04kA/SMC-CourtBooking/internal/usecase/compute_heatmap"
)

type ComputeHeatmapUseCase interface {
	Execute(ctx context.Context, req *computeHeatmap.Request) (*computeHeatmap.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
