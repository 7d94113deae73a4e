package settings

import (
	"fmt"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/constants"
	"github.com/jtwaugh/taskweave/internal/scheduler"
	"github.com/jtwaugh/taskweave/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Mode            *string `help:"Default scheduling mode (strict|balanced|flexible)."`
	Buffer          *int    `help:"Buffer minutes between placements."`
	Horizon         *int    `help:"Days the scheduler searches ahead."`
	StartNextDay    *bool   `help:"Begin scheduling on the next calendar day." name:"start-next-day"`
	DefaultDuration *int    `help:"Fallback subtask duration in minutes." name:"default-duration"`
	PlannerModel    *string `help:"Model name for the AI planner." name:"planner-model"`
	PlannerBaseURL  *string `help:"Base URL override for the planner API." name:"planner-base-url"`
	Timezone        *string `help:"IANA timezone name, or 'Local'."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Default Mode:      %s\n", settings.DefaultMode)
		fmt.Printf("  Buffer Minutes:    %d\n", settings.BufferMinutes)
		fmt.Printf("  Horizon Days:      %d\n", settings.HorizonDays)
		fmt.Printf("  Start Next Day:    %v\n", settings.StartNextDay)
		fmt.Printf("  Default Duration:  %d min\n", settings.DefaultDurationMin)
		fmt.Printf("  Timezone:          %s\n", settings.Timezone)
		fmt.Println("\nPlanner Settings:")
		fmt.Printf("  Model:             %s\n", settings.PlannerModel)
		baseURL := settings.PlannerBaseURL
		if baseURL == "" {
			baseURL = "(default)"
		}
		fmt.Printf("  Base URL:          %s\n", baseURL)
		return nil
	}

	updated := false
	if c.Mode != nil {
		mode, err := scheduler.ParseMode(*c.Mode)
		if err != nil {
			return err
		}
		settings.DefaultMode = string(mode)
		updated = true
	}
	if c.Buffer != nil {
		if *c.Buffer < 0 {
			return fmt.Errorf("buffer must not be negative")
		}
		settings.BufferMinutes = *c.Buffer
		updated = true
	}
	if c.Horizon != nil {
		if *c.Horizon <= 0 || *c.Horizon > constants.MaxHorizonDays {
			return fmt.Errorf("horizon must be between 1 and %d days", constants.MaxHorizonDays)
		}
		settings.HorizonDays = *c.Horizon
		updated = true
	}
	if c.StartNextDay != nil {
		settings.StartNextDay = *c.StartNextDay
		updated = true
	}
	if c.DefaultDuration != nil {
		if *c.DefaultDuration <= 0 {
			return fmt.Errorf("default duration must be greater than zero")
		}
		settings.DefaultDurationMin = *c.DefaultDuration
		updated = true
	}
	if c.PlannerModel != nil {
		settings.PlannerModel = *c.PlannerModel
		updated = true
	}
	if c.PlannerBaseURL != nil {
		settings.PlannerBaseURL = *c.PlannerBaseURL
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
