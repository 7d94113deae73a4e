package tasks

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/logger"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/utils"
)

type SubtaskAddCmd struct {
	TaskID     string `arg:"" help:"Parent task ID."`
	Title      string `arg:"" help:"Subtask title."`
	Duration   int    `short:"d" help:"Duration in minutes. Estimated when omitted."`
	Phase      string `help:"Learning phase (learn|practice|apply|review)."`
	Difficulty string `help:"Difficulty (easy|moderate|hard)."`
}

func (c *SubtaskAddCmd) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("duration must be greater than zero")
	}
	switch models.SubtaskPhase(c.Phase) {
	case "", models.PhaseLearn, models.PhasePractice, models.PhaseApply, models.PhaseReview:
	default:
		return fmt.Errorf("invalid phase %q (expected learn, practice, apply, or review)", c.Phase)
	}
	switch models.Difficulty(c.Difficulty) {
	case "", models.DifficultyEasy, models.DifficultyModerate, models.DifficultyHard:
	default:
		return fmt.Errorf("invalid difficulty %q (expected easy, moderate, or hard)", c.Difficulty)
	}
	return nil
}

func (c *SubtaskAddCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.TaskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	existing, err := ctx.Store.GetSubtasks(task.ID)
	if err != nil {
		return fmt.Errorf("failed to get subtasks: %w", err)
	}

	duration := c.Duration
	if duration == 0 {
		duration = c.estimateDuration(ctx)
	}

	subtask := models.Subtask{
		ID:          uuid.New().String(),
		TaskID:      task.ID,
		Title:       c.Title,
		DurationMin: duration,
		Phase:       models.SubtaskPhase(c.Phase),
		Difficulty:  models.Difficulty(c.Difficulty),
		Order:       len(existing) + 1,
	}

	if err := ctx.Store.AddSubtask(subtask); err != nil {
		return fmt.Errorf("failed to add subtask: %w", err)
	}

	fmt.Printf("Added subtask %d to %s: %s (%s)\n", subtask.Order, task.Title, c.Title, utils.FormatDuration(duration))
	return nil
}

// estimateDuration asks the planner for an estimate, falling back to the
// configured default when the planner is unavailable or errors.
func (c *SubtaskAddCmd) estimateDuration(ctx *cli.Context) int {
	settings, err := ctx.Store.GetSettings()
	fallback := 60
	if err == nil && settings.DefaultDurationMin > 0 {
		fallback = settings.DefaultDurationMin
	}

	planner, err := ctx.NewPlanner()
	if err != nil {
		return fallback
	}
	duration, err := planner.EstimateDuration(context.Background(), c.Title)
	if err != nil {
		logger.Warn("Duration estimation failed, using default", "title", c.Title, "default_min", fallback, "error", err)
		return fallback
	}
	return duration
}

type SubtaskListCmd struct {
	TaskID string `arg:"" help:"Parent task ID."`
}

func (c *SubtaskListCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.TaskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	subtasks, err := ctx.Store.GetSubtasks(task.ID)
	if err != nil {
		return fmt.Errorf("failed to get subtasks: %w", err)
	}
	if len(subtasks) == 0 {
		fmt.Printf("No subtasks for %s\n", task.Title)
		return nil
	}

	fmt.Printf("Subtasks of %s:\n", task.Title)
	for _, st := range subtasks {
		check := " "
		if st.Done {
			check = "x"
		}
		fmt.Printf("  %2d. [%s] %s - %s (ID: %s)\n", st.Order, check, st.Title, utils.FormatDuration(st.DurationMin), st.ID)
	}
	return nil
}

type SubtaskDoneCmd struct {
	ID string `arg:"" help:"Subtask ID."`
}

func (c *SubtaskDoneCmd) Run(ctx *cli.Context) error {
	subtask, err := ctx.Store.GetSubtask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get subtask: %w", err)
	}

	subtask.Done = true
	if err := ctx.Store.UpdateSubtask(subtask); err != nil {
		return fmt.Errorf("failed to update subtask: %w", err)
	}

	fmt.Printf("Marked done: %s\n", subtask.Title)
	return nil
}
