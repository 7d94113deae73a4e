package constants

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	AppName            = "taskweave"
	DefaultKeyringUser = "database-connection"
	APIKeyKeyringUser  = "planner-api-key"
	DefaultConfigPath  = "~/.config/taskweave/taskweave.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Conflict types reported by validation and doctor
	ConflictOverlappingPlacements ConflictType = "overlapping_placements"
	ConflictOutsideAvailability   ConflictType = "outside_availability"
	ConflictOrphanedPlacement     ConflictType = "orphaned_placement"
	ConflictInvalidDateTime       ConflictType = "invalid_date_time"
	ConflictOverlappingSlots      ConflictType = "overlapping_slots"
)
