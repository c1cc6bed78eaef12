package plan_selection

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	planSelection "github.com/m04kA/SMC-CourtBooking/internal/usecase/plan_selection"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgIncompleteBlock    = "минимальная длительность занятия 1 час: следующий слот недоступен"
)

type Handler struct {
	useCase PlanSelectionUseCase
	logger  Logger
}

func NewHandler(useCase PlanSelectionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/selection/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /selection/toggle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /selection/toggle - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, planSelection.ErrIncompleteMinimumBlock):
			// Выбор клиента остаётся прежним
			h.logger.Info("POST /selection/toggle - Incomplete block: location_id=%d, start=%s",
				req.Candidate.LocationID, req.Candidate.Start)
			handlers.RespondErrorWithCode(w, http.StatusUnprocessableEntity, handlers.CodeIncompleteBlock, msgIncompleteBlock)

		default:
			h.logger.Warn("POST /selection/toggle - Failed: date=%s, error=%v", req.Date, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("POST /selection/toggle - Selection updated: date=%s, total_minutes=%d, valid=%t",
		req.Date, result.Summary.TotalMinutes, result.Valid)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
