package list_sessions

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Request модель запроса списка сессий
type Request struct {
	Principal  domain.Principal
	From       types.Date // Первый день по времени академии
	To         types.Date // Последний день (включительно)
	LocationID *int64     // Фильтр локации (опционально)
}

// Session сессия для отображения
type Session struct {
	LocationID   int64
	Date         types.Date
	StartTime    types.TimeString
	EndTime      types.TimeString
	StartUTC     time.Time
	EndUTC       time.Time
	ServiceName  string
	BookingIDs   []int64
	UserIDs      []int64
	Participants []string
	CoachID      *int64
	CoachName    string
	Revenue      float64
}

// Response модель ответа
type Response struct {
	Sessions     []Session
	TotalRevenue float64
	Degraded     bool // Профили недоступны, имена заменены заглушками
}
