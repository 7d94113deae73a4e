package schedule

import (
	"fmt"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/scheduler"
	"github.com/jtwaugh/taskweave/internal/utils"
)

type FeasibilityCmd struct {
	TaskID  string `arg:"" help:"Task ID to analyze."`
	Mode    string `short:"m" help:"Scheduling mode (strict|balanced|flexible). Defaults to settings."`
	Buffer  int    `short:"b" help:"Buffer minutes between placements. Defaults to settings." default:"-1"`
	Horizon int    `help:"Days to search ahead. Defaults to settings." default:"-1"`
	Start   string `short:"s" help:"Start date (YYYY-MM-DD). Defaults to today."`
}

func (c *FeasibilityCmd) Validate() error {
	if c.Start != "" && !utils.ValidateDateFormat(c.Start) {
		return fmt.Errorf("invalid start date format (expected YYYY-MM-DD): %q", c.Start)
	}
	if _, err := scheduler.ParseMode(c.Mode); err != nil {
		return err
	}
	return nil
}

func (c *FeasibilityCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.TaskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	opts, err := ctx.SchedulerOptions()
	if err != nil {
		return err
	}
	if c.Mode != "" {
		opts.Mode, _ = scheduler.ParseMode(c.Mode)
	}
	if c.Buffer >= 0 {
		opts.BufferMinutes = c.Buffer
	}
	if c.Horizon > 0 {
		opts.HorizonDays = c.Horizon
	}
	if c.Start != "" {
		opts.StartDate = c.Start
	}

	subtasks, err := ctx.Store.GetSubtasks(task.ID)
	if err != nil {
		return fmt.Errorf("failed to get subtasks: %w", err)
	}
	pending := make([]models.Subtask, 0, len(subtasks))
	for _, st := range subtasks {
		if !st.Done {
			pending = append(pending, st)
		}
	}
	if len(pending) == 0 {
		// Treat the whole task as one unit when it has no open subtasks.
		pending = []models.Subtask{{TaskID: task.ID, Title: task.Title, DurationMin: task.EstimatedMin}}
	}

	slots, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		return fmt.Errorf("failed to get availability windows: %w", err)
	}
	existing, err := ctx.Store.GetAllScheduledTasks()
	if err != nil {
		return fmt.Errorf("failed to get existing schedule: %w", err)
	}

	analysis, err := ctx.Scheduler.AnalyzeFeasibility(pending, slots, existing, task.DueDate, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Feasibility for %s:\n", task.Title)
	fmt.Printf("  Required:  %s\n", utils.FormatDuration(analysis.RequiredMin))
	fmt.Printf("  Available: %s across %d day(s)\n", utils.FormatDuration(analysis.AvailableMin), analysis.DaysSearched)
	fmt.Println()
	fmt.Println(analysis.Recommendation)
	if len(analysis.Suggestions) > 0 {
		fmt.Println("Suggestions:")
		for _, s := range analysis.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}
	return nil
}
