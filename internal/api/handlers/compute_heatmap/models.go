package compute_heatmap

import (
	computeHeatmap "github.com/m04kA/SMC-CourtBooking/internal/usecase/compute_heatmap"
)

// SessionHeader заголовок с ID клиентской сессии, к которой привязан кеш карты
const SessionHeader = "X-Session-ID"

// DayResponse признак открытого слота в день
type DayResponse struct {
	Date        string `json:"date"`
	HasOpenSlot bool   `json:"hasOpenSlot"`
}

// HeatmapResponse HTTP response model
type HeatmapResponse struct {
	From       string        `json:"from"`
	To         string        `json:"to"`
	LocationID *int64        `json:"locationId,omitempty"`
	Days       []DayResponse `json:"days"`
	Computed   int           `json:"computed"`
}

func FromUseCaseResponse(resp *computeHeatmap.Response) *HeatmapResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, DayResponse{Date: d.Date.String(), HasOpenSlot: d.HasOpenSlot})
	}
	return &HeatmapResponse{
		From:       resp.From.String(),
		To:         resp.To.String(),
		LocationID: resp.LocationID,
		Days:       days,
		Computed:   resp.Computed,
	}
}
