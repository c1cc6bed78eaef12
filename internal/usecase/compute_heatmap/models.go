package compute_heatmap

import (
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Request модель запроса тепловой карты
type Request struct {
	SessionID  string     // Сессия клиента, к которой привязан кеш; пустая - без кеша
	From       types.Date // Первый день по времени академии
	To         types.Date // Последний день (включительно)
	LocationID *int64     // Фильтр локации (опционально)
}

// Day признак наличия открытого слота в день
type Day struct {
	Date        types.Date
	HasOpenSlot bool
}

// Response модель ответа
type Response struct {
	From       types.Date
	To         types.Date
	LocationID *int64
	Days       []Day
	Computed   int // Сколько дней посчитано заново
}

// Entry накопленные дни одной сессии для одного фильтра локации.
// Ключ Days - дата в формате "YYYY-MM-DD".
type Entry struct {
	LocationID *int64          `json:"location_id,omitempty"`
	Days       map[string]bool `json:"days"`
}

func newEntry(locationID *int64) *Entry {
	return &Entry{LocationID: locationID, Days: make(map[string]bool)}
}

// matches проверяет, что запись посчитана для того же фильтра
func (e *Entry) matches(locationID *int64) bool {
	if e.LocationID == nil || locationID == nil {
		return e.LocationID == nil && locationID == nil
	}
	return *e.LocationID == *locationID
}
