package create_availability

import (
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// EndOfDay конец окна в полночь
const EndOfDay = "24:00"

// Request модель запроса на массовое создание слотов
type Request struct {
	Principal   domain.Principal
	LocationID  int64
	From        types.Date       // Первый день по времени академии
	To          types.Date       // Последний день (включительно)
	Weekdays    []time.Weekday   // Дни недели; пусто - все дни
	StartTime   types.TimeString // Начало окна, например "08:00"
	EndTime     types.TimeString // Конец окна, например "20:00"; "24:00" - до полуночи
	ServiceName string
	MaxCapacity int // 0 - значение по умолчанию
}

// Response модель ответа
type Response struct {
	LocationID int64
	Requested  int // Сколько слотов получилось по параметрам
	Created    int // Сколько вставлено
	Skipped    int // Сколько уже существовало
}
