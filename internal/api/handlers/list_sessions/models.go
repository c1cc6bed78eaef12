package list_sessions

import (
	"github.com/m04kA/SMC-CourtBooking/internal/api/handlers"
	listSessions "github.com/m04kA/SMC-CourtBooking/internal/usecase/list_sessions"
)

// SessionResponse сессия: бронирования одной локации с одинаковым интервалом
type SessionResponse struct {
	LocationID   int64    `json:"locationId"`
	Date         string   `json:"date"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	StartUTC     string   `json:"startUtc"`
	EndUTC       string   `json:"endUtc"`
	ServiceName  string   `json:"serviceName"`
	BookingIDs   []int64  `json:"bookingIds"`
	UserIDs      []int64  `json:"userIds"`
	Participants []string `json:"participants"`
	CoachID      *int64   `json:"coachId,omitempty"`
	CoachName    string   `json:"coachName,omitempty"`
	Revenue      float64  `json:"revenue"`
}

// SessionsResponse HTTP response model
type SessionsResponse struct {
	Sessions     []SessionResponse `json:"sessions"`
	TotalRevenue float64           `json:"totalRevenue"`
	Degraded     bool              `json:"degraded"`
}

func FromUseCaseResponse(resp *listSessions.Response) *SessionsResponse {
	sessions := make([]SessionResponse, 0, len(resp.Sessions))
	for _, s := range resp.Sessions {
		sessions = append(sessions, SessionResponse{
			LocationID:   s.LocationID,
			Date:         s.Date.String(),
			StartTime:    s.StartTime.String(),
			EndTime:      s.EndTime.String(),
			StartUTC:     handlers.FormatTime(s.StartUTC),
			EndUTC:       handlers.FormatTime(s.EndUTC),
			ServiceName:  s.ServiceName,
			BookingIDs:   s.BookingIDs,
			UserIDs:      s.UserIDs,
			Participants: s.Participants,
			CoachID:      s.CoachID,
			CoachName:    s.CoachName,
			Revenue:      s.Revenue,
		})
	}
	return &SessionsResponse{
		Sessions:     sessions,
		TotalRevenue: resp.TotalRevenue,
		Degraded:     resp.Degraded,
	}
}
