package plan_selection

import (
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Request модель запроса на переключение слота
type Request struct {
	Date       types.Date // Дата по времени академии
	LocationID *int64     // Фильтр локации (опционально)
	Selection  Selection  // Текущий выбор клиента
	Candidate  Slot       // Слот, по которому кликнули
}

// Response модель ответа с новым выбором
type Response struct {
	Date      types.Date
	Selection Selection
	Valid     bool
	Summary   Summary
}
