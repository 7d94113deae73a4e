package system

import (
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/constants"
	"github.com/jtwaugh/taskweave/internal/keyring"
	"github.com/jtwaugh/taskweave/internal/utils"
	"github.com/jtwaugh/taskweave/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Migrations complete (only if DB is reachable)
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 3: Schedule integrity (only if DB is reachable)
	if dbReachable {
		if err := checkScheduleIntegrity(ctx); err != nil {
			fmt.Printf("❌ Schedule integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schedule integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schedule integrity: SKIPPED (database not reachable)\n")
	}

	// Check 4: Settings sanity (only if DB is reachable)
	if dbReachable {
		if err := checkSettings(ctx); err != nil {
			fmt.Printf("❌ Settings: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings: OK\n")
		}
	} else {
		fmt.Printf("⊘ Settings: SKIPPED (database not reachable)\n")
	}

	// Check 5: Clock/timezone sanity
	if err := checkClockTimezone(ctx); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 6: Keyring availability (warning only)
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   Keyring unavailable; API keys must come from TASKWEAVE_API_KEY\n")
	}

	// Check 7: Planner API key (warning only)
	if hasAPIKey() {
		fmt.Printf("✓ Planner API key: OK\n")
	} else {
		fmt.Printf("⚠ Planner API key: WARNING\n")
		fmt.Printf("   No API key configured; 'taskweave breakdown' will not work\n")
	}

	// Check 8: Concurrent processes (warning only, SQLite is single-writer)
	if count, err := countAppProcesses(); err != nil {
		fmt.Printf("⊘ Concurrent processes: SKIPPED (%v)\n", err)
	} else if count > 1 {
		fmt.Printf("⚠ Concurrent processes: WARNING\n")
		fmt.Printf("   %d taskweave processes running; concurrent writes may conflict\n", count)
	} else {
		fmt.Printf("✓ Concurrent processes: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	store, ok := ctx.Store.(migratable)
	if !ok {
		return nil
	}

	runner, err := store.MigrationRunner()
	if err != nil {
		return err
	}

	currentVersion, err := runner.CurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latestVersion, err := runner.LatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion > latestVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", currentVersion, latestVersion)
	}
	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'taskweave migrate')", currentVersion, latestVersion)
	}
	return nil
}

// checkScheduleIntegrity runs the validation checks over all stored data:
// overlapping placements, placements outside availability, and placements
// referencing missing or deleted tasks.
func checkScheduleIntegrity(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	placements, err := ctx.Store.GetAllScheduledTasks()
	if err != nil {
		return fmt.Errorf("failed to get placements: %w", err)
	}
	slots, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		return fmt.Errorf("failed to get availability windows: %w", err)
	}
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to get tasks: %w", err)
	}

	var conflicts []validation.Conflict
	conflicts = append(conflicts, validation.CheckPlacements(placements, slots, settings.BufferMinutes)...)
	conflicts = append(conflicts, validation.CheckSlotOverlap(slots)...)
	conflicts = append(conflicts, validation.CheckOrphans(placements, tasks)...)

	if len(conflicts) > 0 {
		var lines []string
		for _, c := range conflicts {
			lines = append(lines, fmt.Sprintf("[%s] %s", c.Type, c.Description))
		}
		return fmt.Errorf("found %d conflict(s):\n   %s", len(conflicts), strings.Join(lines, "\n   "))
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if settings.BufferMinutes < 0 {
		return fmt.Errorf("buffer minutes is negative: %d", settings.BufferMinutes)
	}
	if settings.HorizonDays <= 0 || settings.HorizonDays > constants.MaxHorizonDays {
		return fmt.Errorf("horizon days out of range: %d (expected 1-%d)", settings.HorizonDays, constants.MaxHorizonDays)
	}
	if settings.DefaultDurationMin <= 0 {
		return fmt.Errorf("default duration is not positive: %d", settings.DefaultDurationMin)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Store.GetSettings()
	if err == nil && settings.Timezone != "" && !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("configured timezone is invalid: %q", settings.Timezone)
	}
	return nil
}

func hasAPIKey() bool {
	if os.Getenv("TASKWEAVE_API_KEY") != "" {
		return true
	}
	key, err := keyring.GetAPIKey()
	return err == nil && key != ""
}

// countAppProcesses counts running taskweave processes, including this one.
func countAppProcesses() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, err
	}
	count := 0
	for _, p := range procs {
		name := p.Executable()
		if name == constants.AppName || strings.HasPrefix(name, constants.AppName+".") {
			count++
		}
	}
	return count, nil
}
