package domain

import "time"

// Availability is one bookable 30-minute slot of a location.
type Availability struct {
	ID          int64
	LocationID  int64
	StartTime   time.Time // UTC
	EndTime     time.Time // UTC
	ServiceName string
	MaxCapacity int
	IsBooked    bool
	CreatedAt   time.Time
}

// IsOpen returns true if the slot still accepts bookings according to its flag.
// The flag is advisory; CapacityGate re-checks occupancy under a lock.
func (a *Availability) IsOpen() bool {
	return !a.IsBooked
}

// IsFullAt returns true if the given occupancy reaches the slot's capacity.
func (a *Availability) IsFullAt(occupancy int) bool {
	return occupancy >= a.MaxCapacity
}

// RemainingAt returns the number of free places for the given occupancy.
func (a *Availability) RemainingAt(occupancy int) int {
	if occupancy >= a.MaxCapacity {
		return 0
	}
	return a.MaxCapacity - occupancy
}

// Overlaps returns true if [start, end) intersects the slot (half-open intervals).
func (a *Availability) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime)
}

// AvailabilityFilter filters slot queries.
type AvailabilityFilter struct {
	From       time.Time // StartTime >= From
	To         time.Time // StartTime <= To
	LocationID *int64
	OnlyOpen   bool
}

// Location is a court or venue of the academy.
type Location struct {
	ID        int64
	Name      string
	DeletedAt *time.Time
}

// IsDeleted returns true if the location was soft-deleted.
func (l *Location) IsDeleted() bool {
	return l.DeletedAt != nil
}
