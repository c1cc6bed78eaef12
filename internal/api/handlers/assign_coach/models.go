package assign_coach

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

// AssignCoachRequest HTTP request model; coachId = null снимает тренера
type AssignCoachRequest struct {
	CoachID *int64 `json:"coachId" validate:"omitempty,gt=0"`
}

// AssignCoachResponse HTTP response model
type AssignCoachResponse struct {
	LocationID int64  `json:"locationId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	CoachID    *int64 `json:"coachId"`
	Affected   int64  `json:"affected"` // Сколько бронирований сессии обновлено
}

func FromServiceResult(res *models.AssignCoachResult) *AssignCoachResponse {
	return &AssignCoachResponse{
		LocationID: res.Session.LocationID,
		StartTime:  handlers.FormatTime(time.Unix(res.Session.StartUnix, 0)),
		EndTime:    handlers.FormatTime(time.Unix(res.Session.EndUnix, 0)),
		CoachID:    res.CoachID,
		Affected:   res.Affected,
	}
}
