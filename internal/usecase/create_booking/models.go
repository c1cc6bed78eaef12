package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// EndOfDay конец последнего слота дня
const EndOfDay = "24:00"

// Request модель запроса на создание бронирования
type Request struct {
	Principal   domain.Principal
	UserID      *int64           // Ученик, за которого бронирует администратор
	LocationID  int64            // ID локации
	Date        types.Date       // Дата по времени академии
	StartTime   types.TimeString // Начало, например "09:00"
	EndTime     types.TimeString // Конец, например "10:00"; "24:00" для конца суток
	ServiceName string           // Название услуги (по умолчанию берётся из слота)
	CreditCost  float64          // Стоимость в кредитах, списанная до бронирования; задаёт только администратор
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	LocationID  int64
	UserID      int64
	CoachID     *int64
	Date        types.Date
	StartTime   types.TimeString
	EndTime     types.TimeString
	StartUTC    time.Time
	EndUTC      time.Time
	ServiceName string
	CreditCost  float64
	CreatedAt   time.Time
}
