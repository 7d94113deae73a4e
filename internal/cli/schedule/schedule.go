package schedule

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/scheduler"
	"github.com/jtwaugh/taskweave/internal/utils"
)

type ScheduleCmd struct {
	TaskID  string `arg:"" help:"Task ID to schedule."`
	Mode    string `short:"m" help:"Scheduling mode (strict|balanced|flexible). Defaults to settings."`
	Buffer  int    `short:"b" help:"Buffer minutes between placements. Defaults to settings." default:"-1"`
	Horizon int    `help:"Days to search ahead. Defaults to settings." default:"-1"`
	Start   string `short:"s" help:"Start date (YYYY-MM-DD). Defaults to today."`
	NextDay bool   `help:"Begin scheduling on the day after the start date." name:"next-day"`
	DryRun  bool   `help:"Show the placements without saving them." name:"dry-run"`
}

func (c *ScheduleCmd) Validate() error {
	if c.Start != "" && !utils.ValidateDateFormat(c.Start) {
		return fmt.Errorf("invalid start date format (expected YYYY-MM-DD): %q", c.Start)
	}
	if _, err := scheduler.ParseMode(c.Mode); err != nil {
		return err
	}
	return nil
}

// resolveOptions layers command flags over stored settings.
func (c *ScheduleCmd) resolveOptions(ctx *cli.Context) (scheduler.Options, error) {
	opts, err := ctx.SchedulerOptions()
	if err != nil {
		return scheduler.Options{}, err
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
	if c.NextDay {
		opts.StartNextDay = true
	}
	return opts, nil
}

func (c *ScheduleCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.TaskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	opts, err := c.resolveOptions(ctx)
	if err != nil {
		return err
	}

	slots, err := ctx.Store.GetAllTimeSlots()
	if err != nil {
		return fmt.Errorf("failed to get availability windows: %w", err)
	}
	existing, err := ctx.Store.GetAllScheduledTasks()
	if err != nil {
		return fmt.Errorf("failed to get existing schedule: %w", err)
	}

	subtasks, err := ctx.Store.GetSubtasks(task.ID)
	if err != nil {
		return fmt.Errorf("failed to get subtasks: %w", err)
	}

	// Tasks without subtasks are placed as a single block.
	if len(subtasks) == 0 {
		return c.scheduleWhole(ctx, task, slots, existing, opts)
	}

	pending := make([]models.Subtask, 0, len(subtasks))
	for _, st := range subtasks {
		if !st.Done {
			pending = append(pending, st)
		}
	}
	if len(pending) == 0 {
		fmt.Printf("All subtasks of %s are done. Nothing to schedule.\n", task.Title)
		return nil
	}

	result, err := ctx.Scheduler.ScheduleSubtasks(pending, slots, existing, task.DueDate, opts)
	if err != nil {
		return err
	}

	printPlacements(task, result)
	if c.DryRun {
		fmt.Println("\nDry run: nothing was saved.")
		return nil
	}

	for i := range result.Placements {
		result.Placements[i].ID = uuid.New().String()
		if err := ctx.Store.AddScheduledTask(result.Placements[i]); err != nil {
			return fmt.Errorf("failed to save placement: %w", err)
		}
	}
	return nil
}

func (c *ScheduleCmd) scheduleWhole(ctx *cli.Context, task models.Task, slots []models.TimeSlot, existing []models.ScheduledTask, opts scheduler.Options) error {
	placement, err := ctx.Scheduler.FindAvailableTimeSlot(task, slots, existing, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Scheduling %s as a single block:\n", task.Title)
	fmt.Printf("  %s %s-%s (%s)\n", placement.Date, placement.Start, placement.End, utils.FormatDuration(placement.DurationMin))
	if c.DryRun {
		fmt.Println("\nDry run: nothing was saved.")
		return nil
	}

	placement.ID = uuid.New().String()
	if err := ctx.Store.AddScheduledTask(placement); err != nil {
		return fmt.Errorf("failed to save placement: %w", err)
	}
	return nil
}

func printPlacements(task models.Task, result scheduler.Result) {
	if len(result.Placements) > 0 {
		fmt.Printf("Schedule for %s:\n", task.Title)
		for _, p := range result.Placements {
			fmt.Printf("  %s %s-%s (%s)\n", p.Date, p.Start, p.End, utils.FormatDuration(p.DurationMin))
		}
		fmt.Printf("\nTotal: %s, finishing %s\n", utils.FormatDuration(result.TotalScheduledMin), result.CompletionDate)
	}
	if result.Message != "" {
		fmt.Println(result.Message)
	}
}
