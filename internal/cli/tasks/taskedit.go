package tasks

import (
	"fmt"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/utils"
)

type TaskEditCmd struct {
	ID          string  `arg:"" help:"Task ID."`
	Title       *string `help:"New title."`
	Description *string `help:"New description."`
	Due         *string `help:"New due date (YYYY-MM-DD), empty string to clear."`
	Estimate    *int    `help:"New estimated duration in minutes."`
	Priority    *int    `help:"New priority (1-5)."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	updated := false
	if c.Title != nil {
		task.Title = *c.Title
		updated = true
	}
	if c.Description != nil {
		task.Description = *c.Description
		updated = true
	}
	if c.Due != nil {
		if *c.Due != "" && !utils.ValidateDateFormat(*c.Due) {
			return fmt.Errorf("invalid due date format (expected YYYY-MM-DD): %q", *c.Due)
		}
		task.DueDate = *c.Due
		updated = true
	}
	if c.Estimate != nil {
		if *c.Estimate <= 0 {
			return fmt.Errorf("estimate must be greater than zero")
		}
		task.EstimatedMin = *c.Estimate
		updated = true
	}
	if c.Priority != nil {
		if *c.Priority < 1 || *c.Priority > 5 {
			return fmt.Errorf("priority must be between 1 and 5")
		}
		task.Priority = *c.Priority
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified.")
		return nil
	}

	if err := ctx.Store.UpdateTask(task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	fmt.Printf("Updated task: %s\n", task.Title)
	return nil
}
