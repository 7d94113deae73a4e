package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jtwaugh/taskweave/internal/ai"
	"github.com/jtwaugh/taskweave/internal/constants"
	"github.com/jtwaugh/taskweave/internal/keyring"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/scheduler"
	"github.com/jtwaugh/taskweave/internal/storage"
	"github.com/jtwaugh/taskweave/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
}

// NewPlanner builds the AI planner client from settings and the stored API
// key. The TASKWEAVE_API_KEY environment variable takes precedence over the
// OS keyring.
func (c *Context) NewPlanner() (ai.Planner, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	apiKey := os.Getenv("TASKWEAVE_API_KEY")
	if apiKey == "" {
		apiKey, _ = keyring.GetAPIKey()
	}

	return ai.NewClient(ai.Config{
		APIKey:             apiKey,
		Model:              settings.PlannerModel,
		BaseURL:            settings.PlannerBaseURL,
		DefaultDurationMin: settings.DefaultDurationMin,
	})
}

// SchedulerOptions resolves a scheduling run's options from stored settings,
// with today's date (in the configured timezone) as the start day.
func (c *Context) SchedulerOptions() (scheduler.Options, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return scheduler.Options{}, fmt.Errorf("failed to get settings: %w", err)
	}

	mode, err := scheduler.ParseMode(settings.DefaultMode)
	if err != nil {
		return scheduler.Options{}, err
	}

	today, err := utils.GetTodayFromSettings(settings)
	if err != nil {
		return scheduler.Options{}, err
	}

	return scheduler.Options{
		StartDate:     today,
		StartNextDay:  settings.StartNextDay,
		HorizonDays:   settings.HorizonDays,
		BufferMinutes: settings.BufferMinutes,
		Mode:          mode,
	}, nil
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// FormatWeekdays formats a weekday list into short names (Mon,Tue,...)
func FormatWeekdays(weekdays []time.Weekday) string {
	if len(weekdays) == 0 {
		return "none"
	}
	if len(weekdays) == 7 {
		return "every day"
	}
	var days []string
	for _, wd := range weekdays {
		days = append(days, wd.String()[:3])
	}
	return strings.Join(days, ",")
}

// CalculateSlotDuration returns the duration of an availability window in
// minutes. Returns 0 if the time format is invalid (which the caller should
// check).
func CalculateSlotDuration(slot models.TimeSlot) int {
	start, err := time.Parse(constants.TimeFormat, slot.Start)
	if err != nil {
		return 0
	}
	end, err := time.Parse(constants.TimeFormat, slot.End)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Minutes())
}
