package list_sessions

import (
	"net/http"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	listSessions "github.com/m04kA/SMC-CourtBooking/internal/usecase/list_sessions"
)

const (
	msgInvalidRange      = "некорректный диапазон дат, ожидается from и to в формате YYYY-MM-DD"
	msgInvalidLocationID = "некорректный ID локации"
)

type Handler struct {
	useCase ListSessionsUseCase
	logger  Logger
}

func NewHandler(useCase ListSessionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/sessions
// Query params: from, to (required, YYYY-MM-DD), locationId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := handlers.RequirePrincipal(w, r)
	if !ok {
		return
	}

	from, to, err := handlers.QueryDateRange(r)
	if err != nil {
		h.logger.Warn("GET /sessions - Invalid range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	locationID, err := handlers.QueryID(r, "locationId")
	if err != nil {
		h.logger.Warn("GET /sessions - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &listSessions.Request{
		Principal:  principal,
		From:       from,
		To:         to,
		LocationID: locationID,
	})
	if err != nil {
		h.logger.Warn("GET /sessions - Failed: user_id=%d, role=%s, error=%v", principal.UserID, principal.Role, err)
		handlers.RespondDomainError(w, err)
		return
	}

	if result.Degraded {
		h.logger.Warn("GET /sessions - Served with placeholder names: user service unavailable")
	}
	h.logger.Info("GET /sessions - Sessions retrieved: user_id=%d, sessions=%d", principal.UserID, len(result.Sessions))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
