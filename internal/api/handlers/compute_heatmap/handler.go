package compute_heatmap

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	computeHeatmap "github.com/m04kA/SMC-CourtBooking/internal/usecase/compute_heatmap"
)

const (
	msgInvalidRange      = "некорректный диапазон дат, ожидается from и to в формате YYYY-MM-DD"
	msgInvalidLocationID = "некорректный ID локации"
)

type Handler struct {
	useCase ComputeHeatmapUseCase
	logger  Logger
}

func NewHandler(useCase ComputeHeatmapUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/heatmap
// Query params: from, to (required, YYYY-MM-DD), locationId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	from, to, err := handlers.QueryDateRange(r)
	if err != nil {
		h.logger.Warn("GET /heatmap - Invalid range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	locationID, err := handlers.QueryID(r, "locationId")
	if err != nil {
		h.logger.Warn("GET /heatmap - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &computeHeatmap.Request{
		SessionID:  strings.TrimSpace(r.Header.Get(SessionHeader)),
		From:       from,
		To:         to,
		LocationID: locationID,
	})
	if err != nil {
		h.logger.Warn("GET /heatmap - Failed: from=%s, to=%s, error=%v", from, to, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /heatmap - Heatmap computed: from=%s, to=%s, days=%d, computed=%d",
		from, to, len(result.Days), result.Computed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
