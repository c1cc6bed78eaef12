package plan_selection

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// Slot адрес 30-минутного слота: локация и время начала по часам академии
type Slot struct {
	LocationID int64
	Start      types.TimeString
}

// Selection выбранные слоты по локациям. Слоты каждой локации идут подряд
// и отсортированы по времени начала.
type Selection map[int64][]types.TimeString

// Clone возвращает независимую копию выбора
func (s Selection) Clone() Selection {
	clone := make(Selection, len(s))
	for loc, slots := range s {
		clone[loc] = append([]types.TimeString(nil), slots...)
	}
	return clone
}

// OpenSlots множество открытых слотов за день
type OpenSlots map[int64]map[types.TimeString]struct{}

// NewOpenSlots строит множество открытых слотов
func NewOpenSlots(slots []Slot) OpenSlots {
	open := make(OpenSlots)
	for _, s := range slots {
		if open[s.LocationID] == nil {
			open[s.LocationID] = make(map[types.TimeString]struct{})
		}
		open[s.LocationID][s.Start] = struct{}{}
	}
	return open
}

// Has проверяет, что слот открыт
func (o OpenSlots) Has(locationID int64, start types.TimeString) bool {
	_, ok := o[locationID][start]
	return ok
}

// Toggle применяет клик по слоту к выбору и возвращает новый выбор; исходный не меняется.
//
//   - клик по выбранному слоту снимает его; если в локации остаётся меньше двух слотов,
//     выбор локации очищается целиком;
//   - первый клик в локации добавляет следующий слот автоматически, если он открыт,
//     иначе возвращается ErrIncompleteMinimumBlock;
//   - клик ровно через 30 минут после последнего выбранного слота расширяет диапазон;
//   - любой другой клик заменяет выбор локации новым часовым диапазоном.
func Toggle(sel Selection, open OpenSlots, candidate Slot) (Selection, error) {
	if err := validateSlot(candidate); err != nil {
		return sel, err
	}

	current := sel[candidate.LocationID]
	next := sel.Clone()

	// Снятие выбора
	if idx := indexOf(current, candidate.Start); idx >= 0 {
		var remaining []types.TimeString
		if idx == 0 {
			remaining = current[1:]
		} else {
			remaining = current[:idx]
		}

		if len(remaining) < domain.MinSessionSlots {
			delete(next, candidate.LocationID)
		} else {
			next[candidate.LocationID] = append([]types.TimeString(nil), remaining...)
		}
		return next, nil
	}

	if !open.Has(candidate.LocationID, candidate.Start) {
		return sel, ErrSlotNotOpen
	}

	// Расширение диапазона
	if len(current) > 0 {
		after, err := current[len(current)-1].AddMinutes(domain.SlotDurationMinutes)
		if err == nil && after == candidate.Start {
			next[candidate.LocationID] = append(next[candidate.LocationID], candidate.Start)
			return next, nil
		}
	}

	// Первый или несмежный клик: нужен следующий открытый слот
	following, err := candidate.Start.AddMinutes(domain.SlotDurationMinutes)
	if err != nil || !open.Has(candidate.LocationID, following) {
		return sel, ErrIncompleteMinimumBlock
	}

	next[candidate.LocationID] = []types.TimeString{candidate.Start, following}
	return next, nil
}

// IsValid истинно, если хотя бы в одной локации выбрано не меньше часа
func IsValid(sel Selection) bool {
	for _, slots := range sel {
		if len(slots) >= domain.MinSessionSlots {
			return true
		}
	}
	return false
}

// Range отображаемый диапазон выбора локации
type Range struct {
	LocationID int64
	Start      types.TimeString
	End        types.TimeString
	Slots      int
}

// Summary сводка выбора
type Summary struct {
	TotalMinutes int
	Ranges       []Range
}

// Summarize считает общую длительность и диапазон "начало - (последний слот + 30 минут)" по локациям
func Summarize(sel Selection) Summary {
	summary := Summary{Ranges: make([]Range, 0, len(sel))}

	for loc, slots := range sel {
		if len(slots) == 0 {
			continue
		}
		summary.TotalMinutes += domain.SlotDurationMinutes * len(slots)

		sorted := append([]types.TimeString(nil), slots...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].IsBefore(sorted[j]) })

		// 23:30 + 30 минут выходит за сутки, тогда конец отображается как 24:00
		end, err := sorted[len(sorted)-1].AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			end = types.TimeString("24:00")
		}

		summary.Ranges = append(summary.Ranges, Range{
			LocationID: loc,
			Start:      sorted[0],
			End:        end,
			Slots:      len(sorted),
		})
	}

	sort.Slice(summary.Ranges, func(i, j int) bool { return summary.Ranges[i].LocationID < summary.Ranges[j].LocationID })
	return summary
}

func indexOf(slots []types.TimeString, target types.TimeString) int {
	for i, s := range slots {
		if s == target {
			return i
		}
	}
	return -1
}

func validateSlot(s Slot) error {
	if s.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}
	if err := s.Start.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if s.Start.Minutes()%domain.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: slot must start on a %d-minute boundary", ErrInvalidInput, domain.SlotDurationMinutes)
	}
	return nil
}
