package domain

// Slot grid
const (
	SlotDurationMinutes = 30
	MinSessionSlots     = 2 // session is at least one hour
	MinSessionMinutes   = SlotDurationMinutes * MinSessionSlots
)

// Default policy values
const (
	DefaultFreeCancellationHour = 12 // noon local time on the day before the booking
	DefaultMaxHeatmapDays       = 92
	DefaultMaxCapacity          = 1
)

// Business validation constants
const (
	MinCapacity          = 1
	MaxCapacity          = 100
	MaxReasonLength      = 500
	MaxNotesLength       = 500
	MaxBatchSize         = 50
	MaxAvailabilityDays  = 366
	MaxServiceNameLength = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
