package batch_raincheck

import (
	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
)

// BatchRaincheckRequest HTTP request model
type BatchRaincheckRequest struct {
	BookingIDs []int64 `json:"bookingIds" validate:"required,min=1,max=50,dive,gt=0"`
	Reason     string  `json:"reason" validate:"required,max=500"`
}

// ItemResponse итог по одному бронированию
type ItemResponse struct {
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// BatchRaincheckResponse HTTP response model
type BatchRaincheckResponse struct {
	Items         []ItemResponse `json:"items"`
	Succeeded     int            `json:"succeeded"`
	RefundsFailed int            `json:"refundsFailed"`
	Failed        int            `json:"failed"`
	Outcome       string         `json:"outcome"`
}

func (r *BatchRaincheckRequest) ToServiceRequest(principal domain.Principal) *models.BatchRaincheckRequest {
	return &models.BatchRaincheckRequest{
		Principal:  principal,
		BookingIDs: r.BookingIDs,
		Reason:     r.Reason,
	}
}

func FromServiceResult(res *models.BatchRaincheckResult) *BatchRaincheckResponse {
	items := make([]ItemResponse, 0, len(res.Items))
	for _, item := range res.Items {
		out := ItemResponse{BookingID: item.BookingID, Status: string(item.Status)}
		if item.Err != nil {
			out.Error = item.Err.Error()
		}
		items = append(items, out)
	}
	return &BatchRaincheckResponse{
		Items:         items,
		Succeeded:     res.Succeeded,
		RefundsFailed: res.RefundsFailed,
		Failed:        res.Failed,
		Outcome:       string(res.Outcome),
	}
}
