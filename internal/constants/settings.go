package constants

const (
	// Default Settings Values
	DefaultMode          = "balanced"
	DefaultBufferMinutes = 10
	DefaultHorizonDays   = 90
	DefaultStartNextDay  = false
	DefaultDurationMin   = 60
	DefaultPlannerModel  = "gpt-4o-mini"
	DefaultTimezone      = "Local" // Use system local timezone by default

	// MaxHorizonDays bounds the scheduler's search regardless of configuration
	MaxHorizonDays = 365

	// Default availability window used by `taskweave init`
	DefaultSlotStart = "09:00"
	DefaultSlotEnd   = "17:00"
)
