package plan_selection

import (
	"fmt"
	"sort"

	planSelection "github.com/m04kA/SMC-CourtBooking/internal/usecase/plan_selection"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

// LocationSelection выбранные слоты одной локации
type LocationSelection struct {
	LocationID int64    `json:"locationId" validate:"required,gt=0"`
	Slots      []string `json:"slots" validate:"dive,required"` // ["09:00", "09:30"]
}

// SlotRequest слот, по которому кликнули
type SlotRequest struct {
	LocationID int64  `json:"locationId" validate:"required,gt=0"`
	Start      string `json:"start" validate:"required"`
}

// ToggleRequest HTTP request model
type ToggleRequest struct {
	Date       string              `json:"date" validate:"required"`
	LocationID *int64              `json:"locationId,omitempty" validate:"omitempty,gt=0"`
	Selection  []LocationSelection `json:"selection" validate:"dive"`
	Candidate  SlotRequest         `json:"candidate"`
}

// RangeResponse отображаемый диапазон локации
type RangeResponse struct {
	LocationID int64  `json:"locationId"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Slots      int    `json:"slots"`
}

// ToggleResponse HTTP response model
type ToggleResponse struct {
	Date         string              `json:"date"`
	Selection    []LocationSelection `json:"selection"`
	Valid        bool                `json:"valid"`
	TotalMinutes int                 `json:"totalMinutes"`
	Ranges       []RangeResponse     `json:"ranges"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ToggleRequest) ToUseCaseRequest() (*planSelection.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	selection := make(planSelection.Selection, len(r.Selection))
	for _, loc := range r.Selection {
		if _, dup := selection[loc.LocationID]; dup {
			return nil, fmt.Errorf("duplicate location %d in selection", loc.LocationID)
		}
		slots := make([]types.TimeString, 0, len(loc.Slots))
		for _, s := range loc.Slots {
			ts, err := types.NewTimeStringFromString(s)
			if err != nil {
				return nil, err
			}
			slots = append(slots, ts)
		}
		selection[loc.LocationID] = slots
	}

	start, err := types.NewTimeStringFromString(r.Candidate.Start)
	if err != nil {
		return nil, err
	}

	return &planSelection.Request{
		Date:       date,
		LocationID: r.LocationID,
		Selection:  selection,
		Candidate: planSelection.Slot{
			LocationID: r.Candidate.LocationID,
			Start:      start,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *planSelection.Response) *ToggleResponse {
	out := &ToggleResponse{
		Date:         resp.Date.String(),
		Selection:    make([]LocationSelection, 0, len(resp.Selection)),
		Valid:        resp.Valid,
		TotalMinutes: resp.Summary.TotalMinutes,
		Ranges:       make([]RangeResponse, 0, len(resp.Summary.Ranges)),
	}

	for loc, slots := range resp.Selection {
		item := LocationSelection{LocationID: loc, Slots: make([]string, 0, len(slots))}
		for _, s := range slots {
			item.Slots = append(item.Slots, s.String())
		}
		out.Selection = append(out.Selection, item)
	}
	sort.Slice(out.Selection, func(i, j int) bool { return out.Selection[i].LocationID < out.Selection[j].LocationID })

	for _, rg := range resp.Summary.Ranges {
		out.Ranges = append(out.Ranges, RangeResponse{
			LocationID: rg.LocationID,
			Start:      rg.Start.String(),
			End:        rg.End.String(),
			Slots:      rg.Slots,
		})
	}

	return out
}
