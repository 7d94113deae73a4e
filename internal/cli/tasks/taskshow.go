package tasks

import (
	"fmt"

	"github.com/jtwaugh/taskweave/internal/cli"
	"github.com/jtwaugh/taskweave/internal/utils"
)

type TaskShowCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskShowCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Store.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	fmt.Printf("Task: %s\n", task.Title)
	fmt.Printf("  ID:       %s\n", task.ID)
	if task.Description != "" {
		fmt.Printf("  About:    %s\n", task.Description)
	}
	if task.DueDate != "" {
		fmt.Printf("  Due:      %s\n", task.DueDate)
	}
	fmt.Printf("  Estimate: %s\n", utils.FormatDuration(task.EstimatedMin))
	fmt.Printf("  Priority: %d\n", task.Priority)

	subtasks, err := ctx.Store.GetSubtasks(task.ID)
	if err != nil {
		return fmt.Errorf("failed to get subtasks: %w", err)
	}
	if len(subtasks) > 0 {
		fmt.Println("\nSubtasks:")
		for _, st := range subtasks {
			check := " "
			if st.Done {
				check = "x"
			}
			extra := ""
			if st.Phase != "" {
				extra = fmt.Sprintf(" [%s]", st.Phase)
			}
			fmt.Printf("  %2d. [%s] %s - %s%s\n", st.Order, check, st.Title, utils.FormatDuration(st.DurationMin), extra)
		}
	}

	placements, err := ctx.Store.GetScheduledTasksForTask(task.ID)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}
	if len(placements) > 0 {
		fmt.Println("\nScheduled:")
		for _, p := range placements {
			fmt.Printf("  %s %s-%s\n", p.Date, p.Start, p.End)
		}
	}

	return nil
}
