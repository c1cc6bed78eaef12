package create_availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	createAvailability "github.com/m04kA/SMC-CourtBooking/internal/usecase/create_availability"
	"github.com/m04kA/SMC-CourtBooking/pkg/types"
)

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// CreateAvailabilityRequest HTTP request model
type CreateAvailabilityRequest struct {
	From        string   `json:"from" validate:"required"`
	To          string   `json:"to" validate:"required"`
	Weekdays    []string `json:"weekdays,omitempty" validate:"omitempty,dive,oneof=mon tue wed thu fri sat sun"`
	StartTime   string   `json:"startTime" validate:"required"`
	EndTime     string   `json:"endTime" validate:"required"`
	ServiceName string   `json:"serviceName,omitempty" validate:"max=100"`
	MaxCapacity int      `json:"maxCapacity,omitempty" validate:"omitempty,min=1,max=100"`
}

// CreateAvailabilityResponse HTTP response model
type CreateAvailabilityResponse struct {
	LocationID int64 `json:"locationId"`
	Requested  int   `json:"requested"`
	Created    int   `json:"created"`
	Skipped    int   `json:"skipped"`
}

func (r *CreateAvailabilityRequest) ToUseCaseRequest(principal domain.Principal, locationID int64) (*createAvailability.Request, error) {
	from, err := types.ParseDate(r.From)
	if err != nil {
		return nil, err
	}
	to, err := types.ParseDate(r.To)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	endTime := types.TimeString(r.EndTime)
	if r.EndTime != createAvailability.EndOfDay {
		endTime, err = types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("endTime: %w", err)
		}
	}

	days := make([]time.Weekday, 0, len(r.Weekdays))
	for _, name := range r.Weekdays {
		day, ok := weekdays[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		days = append(days, day)
	}

	return &createAvailability.Request{
		Principal:   principal,
		LocationID:  locationID,
		From:        from,
		To:          to,
		Weekdays:    days,
		StartTime:   startTime,
		EndTime:     endTime,
		ServiceName: r.ServiceName,
		MaxCapacity: r.MaxCapacity,
	}, nil
}

func FromUseCaseResponse(resp *createAvailability.Response) *CreateAvailabilityResponse {
	return &CreateAvailabilityResponse{
		LocationID: resp.LocationID,
		Requested:  resp.Requested,
		Created:    resp.Created,
		Skipped:    resp.Skipped,
	}
}
